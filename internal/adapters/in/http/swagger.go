package http

import (
	"fmt"
	"sync"

	"routekeeper/internal/api/servers"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// apiDoc serves the OpenAPI document to swag.
type apiDoc struct {
	json string
}

func (d apiDoc) ReadDoc() string {
	return d.json
}

var (
	registerMu   sync.Mutex
	registered   bool
	loadDocument = servers.GetSwagger
)

// RegisterSwagger publishes the API document and mounts the UI at /swagger/*.
// The document is registered with swag once per process; a failed attempt is retried on the next call.
func RegisterSwagger(e *echo.Echo) error {
	registerMu.Lock()
	defer registerMu.Unlock()

	if !registered {
		if err := registerDocument(); err != nil {
			return err
		}
		registered = true
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}

func registerDocument() error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode api document: %w", err)
	}
	swag.Register(swag.Name, apiDoc{json: string(raw)})
	return nil
}
