package http

import (
	"net/http"
	"strings"

	"github.com/aretw0/localsettings"
	"github.com/getkin/kin-openapi/openapi3"
)

// APIVersion is the version of the HTTP contract.
const APIVersion = "1.0.0"

// NewOpenAPI describes the HTTP API.
func NewOpenAPI() *openapi3.T {
	account := &openapi3.ParameterRef{Value: openapi3.NewPathParameter("account").
		WithSchema(openapi3.NewStringSchema()).
		WithDescription("Account the settings belong to")}

	settingsSchema := openapi3.NewObjectSchema()
	settingsSchema.Description = "Settings snapshot"
	pageSchema := openapi3.NewObjectSchema()
	pageSchema.Description = "Rendered settings page"
	dialogSchema := openapi3.NewObjectSchema()
	dialogSchema.Description = "Navigation bar and rendered page"

	changeSchema := openapi3.NewObjectSchema().
		WithProperty("path", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("value", openapi3.NewSchema())
	changeSchema.Required = []string{"path", "value"}

	inputSchema := openapi3.NewObjectSchema().
		WithProperty("checked", openapi3.NewBoolSchema()).
		WithProperty("text", openapi3.NewStringSchema()).
		WithProperty("value", openapi3.NewStringSchema())

	op := func(id, summary string, status int, desc string, schema *openapi3.Schema) *openapi3.Operation {
		o := openapi3.NewOperation()
		o.OperationID = id
		o.Summary = summary
		resp := openapi3.NewResponse().WithDescription(desc)
		if schema != nil {
			resp = resp.WithJSONSchema(schema)
		}
		o.Responses = openapi3.NewResponses(
			openapi3.WithStatus(status, &openapi3.ResponseRef{Value: resp}),
			openapi3.WithName("default", openapi3.NewResponse().WithDescription("Error")),
		)
		return o
	}
	withBody := func(o *openapi3.Operation, schema *openapi3.Schema) *openapi3.Operation {
		o.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(schema)}
		return o
	}

	statusSchema := openapi3.NewObjectSchema().WithProperty("status", openapi3.NewStringSchema())
	infoSchema := openapi3.NewObjectSchema().
		WithProperty("app", openapi3.NewStringSchema()).
		WithProperty("version", openapi3.NewStringSchema()).
		WithProperty("api_version", openapi3.NewStringSchema())
	accountsSchema := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	connDataSchema := openapi3.NewObjectSchema().
		WithProperty("prebind_url", openapi3.NewStringSchema()).
		WithProperty("jid", openapi3.NewStringSchema()).
		WithProperty("http_bind_url", openapi3.NewStringSchema())
	connDataSchema.Nullable = true

	index := &openapi3.ParameterRef{Value: openapi3.NewPathParameter("index").WithSchema(openapi3.NewIntegerSchema())}
	field := &openapi3.ParameterRef{Value: openapi3.NewPathParameter("field").WithSchema(openapi3.NewStringSchema())}
	watch := &openapi3.ParameterRef{Value: openapi3.NewQueryParameter("watch").
		WithSchema(openapi3.NewStringSchema()).
		WithDescription("Comma separated path prefixes to filter events")}
	page := &openapi3.ParameterRef{Value: openapi3.NewQueryParameter("page").WithSchema(openapi3.NewIntegerSchema())}

	events := op("subscribeEvents", "Stream applied changes (SSE)", http.StatusOK, "Event stream", nil)
	events.Parameters = openapi3.Parameters{watch}
	dialog := op("renderDialog", "Render the dialog with a page selected", http.StatusOK, "Dialog", dialogSchema)
	dialog.Parameters = openapi3.Parameters{page}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "localsettings",
			Version: APIVersion,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/health", &openapi3.PathItem{
				Get: op("getHealth", "Liveness probe", http.StatusOK, "OK", statusSchema),
			}),
			openapi3.WithPath("/info", &openapi3.PathItem{
				Get: op("getInfo", "Build information", http.StatusOK, "Info", infoSchema),
			}),
			openapi3.WithPath("/accounts", &openapi3.PathItem{
				Get: op("listAccounts", "Accounts with stored settings", http.StatusOK, "Accounts", accountsSchema),
			}),
			openapi3.WithPath("/accounts/{account}/settings", &openapi3.PathItem{
				Parameters: openapi3.Parameters{account},
				Get:        op("getSettings", "Current snapshot or defaults", http.StatusOK, "Settings", settingsSchema),
				Put:        withBody(op("replaceSettings", "Replace the snapshot", http.StatusOK, "Settings", settingsSchema), settingsSchema),
				Patch:      withBody(op("changeSetting", "Apply one change event", http.StatusOK, "Settings", settingsSchema), changeSchema),
				Delete:     op("resetSettings", "Restore the defaults", http.StatusNoContent, "Reset", nil),
			}),
			openapi3.WithPath("/accounts/{account}/settings/dialog", &openapi3.PathItem{
				Parameters: openapi3.Parameters{account},
				Get:        dialog,
			}),
			openapi3.WithPath("/accounts/{account}/settings/pages/{index}", &openapi3.PathItem{
				Parameters: openapi3.Parameters{account, index},
				Get:        op("renderPage", "Render a dialog page", http.StatusOK, "Page", pageSchema),
			}),
			openapi3.WithPath("/accounts/{account}/settings/columns/home", &openapi3.PathItem{
				Parameters: openapi3.Parameters{account},
				Get:        op("renderHomeColumn", "Render the home column settings", http.StatusOK, "Page", pageSchema),
			}),
			openapi3.WithPath("/accounts/{account}/settings/fields/{field}", &openapi3.PathItem{
				Parameters: openapi3.Parameters{account, field},
				Post:       withBody(op("interact", "Interact with a field", http.StatusOK, "Settings", settingsSchema), inputSchema),
			}),
			openapi3.WithPath("/accounts/{account}/events", &openapi3.PathItem{
				Parameters: openapi3.Parameters{account},
				Get:        events,
			}),
			openapi3.WithPath("/xmpp/conndata", &openapi3.PathItem{
				Get: op("getConnData", "XMPP connection data", http.StatusOK, "Connection data or null", connDataSchema),
			}),
		),
	}
}

func appVersion() string {
	return strings.TrimSpace(localsettings.Version)
}
