package node

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
)

var (
	// ErrInvalidImage is returned when image_base64 does not decode to an image.
	ErrInvalidImage = errors.New("image_base64 is not a decodable image")
	// ErrInvalidInputs is returned when inputs do not match the node's shape.
	ErrInvalidInputs = errors.New("inputs do not match the expected shape")
)

const fieldImage = "image_base64"

// decode copies inputs into out. Unknown keys are ignored; type mismatches
// are validation errors.
func decode(op string, inputs map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(inputs); err != nil {
		return multimodal.ValidationError(op, "inputs", fmt.Errorf("%w: %v", ErrInvalidInputs, err))
	}
	return nil
}

// decodeImage accepts a data URL ("data:image/png;base64,...") or bare
// base64 and returns the raw bytes once they decode as an image.
func decodeImage(op, value string) ([]byte, error) {
	payload := value
	if strings.HasPrefix(value, "data:") {
		header, encoded, ok := strings.Cut(value, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return nil, multimodal.ValidationError(op, fieldImage, ErrInvalidImage)
		}
		payload = encoded
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, multimodal.ValidationError(op, fieldImage, fmt.Errorf("%w: %v", ErrInvalidImage, err))
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil, multimodal.ValidationError(op, fieldImage, fmt.Errorf("%w: %v", ErrInvalidImage, err))
	}
	return raw, nil
}
