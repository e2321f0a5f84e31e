package fallback

import (
	"fmt"
	"reflect"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/vfg2006/competitor-intel-api/infrastructure/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeRow preenche out a partir da linha usando as tags json da entidade.
// Campos ausentes ou nulos ficam com o valor zero; números em texto e
// documentos JSON serializados como texto são convertidos.
func DecodeRow(row store.Row, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       jsonStringHook,
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("erro ao criar decoder: %w", err)
	}

	if err := decoder.Decode(map[string]any(row)); err != nil {
		return fmt.Errorf("erro ao mapear linha: %w", err)
	}

	return nil
}

// jsonStringHook aceita colunas compostas gravadas como texto em vez de JSONB
func jsonStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Map, reflect.Slice, reflect.Struct:
	default:
		return data, nil
	}

	raw := strings.TrimSpace(data.(string))
	if raw == "" {
		if to.Kind() == reflect.Slice {
			return []any{}, nil
		}
		return map[string]any{}, nil
	}

	if !strings.HasPrefix(raw, "{") && !strings.HasPrefix(raw, "[") {
		return data, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	return decoded, nil
}
