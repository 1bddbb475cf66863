package steps

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charlievieth/strcase"
	"github.com/samber/lo"
	"github.com/vladimir-rom/gokql"
	"github.com/vladimir-rom/chartprops/pipeline"
	"github.com/vladimir-rom/chartprops/schema"
)

const (
	FieldKey     = "key"
	FieldType    = "type"
	FieldTitle   = "title"
	FieldDefault = "default"
)

var AllFields = []string{FieldKey, FieldType, FieldTitle, FieldDefault}

func Noop[V any]() pipeline.Step[V, V] {
	return func(in pipeline.Seq[V]) pipeline.Seq[V] {
		return in
	}
}

// FromTable yields one record per table entry in declaration order.
func FromTable(rules string, t *schema.Table) pipeline.Seq[JSON] {
	return func(yield pipeline.Yield[JSON]) {
		recNum := 0
		for key, desc := range t.Entries {
			rec := JSON{
				FieldKey:     key,
				FieldType:    string(desc.Type),
				FieldTitle:   desc.Title,
				FieldDefault: desc.Default,
			}
			if !yield(pipeline.NewItem(rec, pipeline.Metadata{RecNum: recNum, Rules: rules}), nil) {
				return
			}
			recNum++
		}
	}
}

func Keys(opts pipeline.PipelineOptions, keys []string) pipeline.Step[JSON, JSON] {
	if len(keys) == 0 {
		return Noop[JSON]()
	}

	keySet := lo.SliceToMap(keys, func(k string) (string, struct{}) { return k, struct{}{} })

	return pipeline.NewStep(opts, func(obj pipeline.Item[JSON], yield pipeline.Yield[JSON]) bool {
		if obj.Metadata.Removed {
			return yield(obj, nil)
		}

		_, ok := keySet[fmt.Sprint(obj.Value[FieldKey])]
		obj.Metadata.Removed = !ok
		return yield(obj, nil)
	})
}

// IncludeSubstringsAny keeps records where any string field contains any of
// substrings, ignoring case.
func IncludeSubstringsAny(opts pipeline.PipelineOptions, substrings []string) pipeline.Step[JSON, JSON] {
	if len(substrings) == 0 {
		return Noop[JSON]()
	}

	return pipeline.NewStep(opts, func(obj pipeline.Item[JSON], yield pipeline.Yield[JSON]) bool {
		if obj.Metadata.Removed {
			return yield(obj, nil)
		}

		for _, v := range obj.Value {
			str, ok := v.(string)
			if !ok {
				continue
			}
			for _, s := range substrings {
				if strcase.Contains(str, s) {
					return yield(obj, nil)
				}
			}
		}
		obj.Metadata.Removed = true
		return yield(obj, nil)
	})
}

func Select(opts pipeline.PipelineOptions, fields []string) pipeline.Step[JSON, JSON] {
	if len(fields) == 0 {
		return Noop[JSON]()
	}

	return pipeline.NewStep(opts, func(obj pipeline.Item[JSON], yield pipeline.Yield[JSON]) bool {
		result := make(JSON)
		for _, field := range fields {
			if value, ok := obj.Value[field]; ok {
				result[field] = value
			}
		}

		return yield(obj.WithValue(result), nil)
	})
}

func FilterByKQL(opts pipeline.PipelineOptions, filter string) (pipeline.Step[JSON, JSON], error) {
	if len(filter) == 0 {
		return Noop[JSON](), nil
	}

	expression, err := gokql.Parse(filter)
	if err != nil {
		return nil, fmt.Errorf("filter parsing error: %w", err)
	}

	return pipeline.NewStep(opts, func(obj pipeline.Item[JSON], yield pipeline.Yield[JSON]) bool {
		if obj.Metadata.Removed {
			return yield(obj, nil)
		}

		ev, err := gokql.NewMapEvaluator(map[string]any(obj.Value))
		if err != nil {
			return yield(obj.WithValue(nil), err)
		}

		matched, err := expression.Match(ev)
		if err != nil {
			return yield(obj.WithValue(nil), err)
		}
		obj.Metadata.Removed = !matched
		return yield(obj, nil)
	}), nil
}

func JsonToStr(opts pipeline.PipelineOptions) pipeline.Step[JSON, string] {
	return pipeline.NewStep(opts, func(obj pipeline.Item[JSON], yield pipeline.Yield[string]) bool {
		b, err := json.Marshal(obj.Value)
		return yield(pipeline.ToItem(obj, string(b)), err)
	})
}

// WriteLines writes every line and returns the number of lines written.
func WriteLines(w io.Writer, showErrors bool, lines pipeline.Seq[string]) (int, error) {
	written := 0
	for line, err := range lines {
		if err != nil {
			if showErrors {
				_, err := fmt.Fprintln(w, err)
				if err != nil {
					return written, err
				}
			}
		} else {
			_, err := fmt.Fprintln(w, line.Value)
			if err != nil {
				return written, err
			}
			written++
		}
	}

	return written, nil
}
