package http

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"

	"goremind/internal/reminders/app/dto"
	"goremind/internal/reminders/domain/entities"
	"goremind/internal/reminders/ports/api"
)

// Метаданные API.
const (
	APITitle       = "Reminders API"
	APIVersion     = "1.0.0"
	APIDescription = "A simple API for managing reminders with CRUD operations"
	apiTag         = "Reminders"
)

var (
	timestampType  = reflect.TypeOf(dto.Timestamp{})
	optionalPrefix = "Optional["
	dtoPkgPath     = reflect.TypeOf(dto.Timestamp{}).PkgPath()
)

// schemaReflector строит JSON Schema без $ref, с обязательностью из тегов jsonschema.
func schemaReflector() *jsonschema.Reflector {
	r := &jsonschema.Reflector{
		Anonymous:                  true,
		DoNotReference:             true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
	r.Mapper = func(t reflect.Type) *jsonschema.Schema {
		if t == timestampType {
			return &jsonschema.Schema{Type: "string", Format: "date-time"}
		}
		if t.PkgPath() == dtoPkgPath && strings.HasPrefix(t.Name(), optionalPrefix) {
			inner, ok := t.FieldByName("Value")
			if !ok {
				return nil
			}
			return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
				scalarSchema(inner.Type),
				{Type: "null"},
			}}
		}
		return nil
	}
	return r
}

func scalarSchema(t reflect.Type) *jsonschema.Schema {
	if t == timestampType {
		return &jsonschema.Schema{Type: "string", Format: "date-time"}
	}
	switch t.Kind() {
	case reflect.Bool:
		return &jsonschema.Schema{Type: "boolean"}
	case reflect.Int, reflect.Int32, reflect.Int64:
		return &jsonschema.Schema{Type: "integer"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}

func reflectSchema(r *jsonschema.Reflector, v any) *jsonschema.Schema {
	s := r.Reflect(v)
	s.Version = ""
	return s
}

// Schemas возвращает схемы тел запросов и ответов.
func Schemas() map[string]*jsonschema.Schema {
	r := schemaReflector()
	return map[string]*jsonschema.Schema{
		"Reminder":              reflectSchema(r, &entities.Reminder{}),
		"CreateReminderRequest": reflectSchema(r, &dto.CreateReminderRequest{}),
		"UpdateReminderRequest": reflectSchema(r, &dto.UpdateReminderRequest{}),
		"ErrorResponse":         reflectSchema(r, &dto.ErrorResponse{}),
	}
}

// BuildOpenAPI строит документ OpenAPI 3.1 по таблице операций.
func BuildOpenAPI(ops []api.Operation) ([]byte, error) {
	paths := map[string]map[string]any{}
	for _, op := range ops {
		item, ok := paths[op.Path]
		if !ok {
			item = map[string]any{}
			paths[op.Path] = item
		}
		item[strings.ToLower(op.Method)] = openAPIOperation(op)
	}

	doc := map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":       APITitle,
			"version":     APIVersion,
			"description": APIDescription,
		},
		"paths": paths,
		"components": map[string]any{
			"schemas": Schemas(),
		},
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openapi document: %w", err)
	}
	return out, nil
}

func ref(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func jsonContent(schema any) map[string]any {
	return map[string]any{"application/json": map[string]any{"schema": schema}}
}

func openAPIOperation(op api.Operation) map[string]any {
	errorResponse := func(description string) map[string]any {
		return map[string]any{"description": description, "content": jsonContent(ref("ErrorResponse"))}
	}

	responses := map[string]any{
		strconv.Itoa(statusByCode[api.CodeStorageUnavailable]): errorResponse("Storage unavailable"),
	}

	success := map[string]any{"description": op.Summary}
	switch op.Name {
	case api.OpGetAllReminders:
		success["content"] = jsonContent(map[string]any{"type": "array", "items": ref("Reminder")})
	case api.OpDeleteReminder:
	default:
		success["content"] = jsonContent(ref("Reminder"))
	}
	responses[strconv.Itoa(op.SuccessStatus)] = success

	out := map[string]any{
		"operationId": op.Name,
		"summary":     op.Summary,
		"description": op.Description,
		"tags":        []string{apiTag},
		"responses":   responses,
	}

	if op.HasPathID {
		out["parameters"] = []map[string]any{{
			"name":     api.PathParamReminderID,
			"in":       "path",
			"required": true,
			"schema":   map[string]any{"type": "string", "format": "uuid"},
		}}
		responses[strconv.Itoa(statusByCode[api.CodeNotFound])] = errorResponse("Reminder not found")
	}

	if op.HasBody {
		body := "CreateReminderRequest"
		if op.Name == api.OpUpdateReminder {
			body = "UpdateReminderRequest"
		}
		out["requestBody"] = map[string]any{"required": true, "content": jsonContent(ref(body))}
		responses[strconv.Itoa(statusByCode[api.CodeValidation])] = errorResponse("Validation error")
	}

	return out
}
