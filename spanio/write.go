package spanio

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/tsawler/titulus/model"
)

// EncodeResult renders a result as indented JSON, the shape consumers
// of batch output read:
//
//	{
//	  "title": "Annual Report 2023  ",
//	  "outline": [
//	    {"level": "H1", "text": "1. Introduction", "page": 1}
//	  ]
//	}
func EncodeResult(result *model.Result) ([]byte, error) {
	data, err := sonic.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("spanio: encoding result: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteResult writes a result to path as indented JSON.
func WriteResult(path string, result *model.Result) error {
	data, err := EncodeResult(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("spanio: %w", err)
	}
	return nil
}
