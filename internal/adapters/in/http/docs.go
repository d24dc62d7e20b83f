package http

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// docsHandler serves the API browser under /swagger/ and the document
// itself at /swagger/doc.json.
var docsHandler = echoSwagger.WrapHandler

var registerDocsOnce sync.Once

type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

// registerDocs publishes the embedded document to the swag registry read by
// the API browser. Only the first call registers.
func registerDocs(swagger *openapi3.T) error {
	raw, err := json.Marshal(swagger)
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}
	registerDocsOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(raw)})
	})
	return nil
}
