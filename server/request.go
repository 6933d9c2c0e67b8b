package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/meikuraledutech/pipeline"
)

// Pointer fields tell a missing key apart from an empty string: the editor
// may send "" as an id, but the key itself is required.
type nodeRequest struct {
	ID       *string         `json:"id" validate:"required"`
	Data     json.RawMessage `json:"data"`
	Position json.RawMessage `json:"position"`
	Type     *string         `json:"type"`
}

type edgeRequest struct {
	ID     *string `json:"id" validate:"required"`
	Source *string `json:"source" validate:"required"`
	Target *string `json:"target" validate:"required"`
	Type   *string `json:"type"`
}

type pipelineRequest struct {
	Nodes []nodeRequest `json:"nodes" validate:"required,dive"`
	Edges []edgeRequest `json:"edges" validate:"required,dive"`
}

func (r *pipelineRequest) toPipeline() pipeline.Pipeline {
	p := pipeline.Pipeline{
		Nodes: make([]pipeline.Node, len(r.Nodes)),
		Edges: make([]pipeline.Edge, len(r.Edges)),
	}
	for i, n := range r.Nodes {
		p.Nodes[i] = pipeline.Node{ID: *n.ID, Data: n.Data, Position: n.Position, Type: n.Type}
	}
	for i, e := range r.Edges {
		p.Edges[i] = pipeline.Edge{ID: *e.ID, Source: *e.Source, Target: *e.Target, Type: e.Type}
	}
	return p
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct validates a struct based on its validation tags
func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// formatFieldError names the field by its JSON path, e.g. "edges[2].source".
func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
