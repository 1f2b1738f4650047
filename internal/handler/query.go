package handler

import (
	"github.com/gin-gonic/gin"

	"GeoConvert-App/internal/domain/model"
)

// parseFlag "0"/"1" のクエリフラグを解析する。present は指定有無
func parseFlag(c *gin.Context, name string) (value bool, present bool, err error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return false, false, nil
	}
	switch raw {
	case "0":
		return false, true, nil
	case "1":
		return true, true, nil
	default:
		return false, true, &model.ValidationError{Field: name, Message: "must be 0 or 1"}
	}
}

// optionalFlag 指定がなければ nil
func optionalFlag(c *gin.Context, name string) (*bool, error) {
	value, present, err := parseFlag(c, name)
	if err != nil || !present {
		return nil, err
	}
	return &value, nil
}

// renderOptionsFromQuery クエリのトグルからRenderModeを決める
func renderOptionsFromQuery(c *gin.Context) (model.RenderOptions, error) {
	grayscale, _, err := parseFlag(c, "grayscale")
	if err != nil {
		return model.RenderOptions{}, err
	}
	truePositive, err := optionalFlag(c, "true-positive")
	if err != nil {
		return model.RenderOptions{}, err
	}
	falsePositive, err := optionalFlag(c, "false-positive")
	if err != nil {
		return model.RenderOptions{}, err
	}
	falseNegative, err := optionalFlag(c, "false-negative")
	if err != nil {
		return model.RenderOptions{}, err
	}

	return model.ResolveRenderOptions(grayscale, truePositive, falsePositive, falseNegative), nil
}
