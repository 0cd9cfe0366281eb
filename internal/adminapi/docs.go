// Package adminapi exposes the bridge's health, stats, and recent-activity
// HTTP surface.
//
// @title mDNS Bridge Admin API
// @version 1.0
// @description Health, stats, and recent-activity surface for the mDNS bridge.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8090
// @BasePath /
package adminapi

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {}
}`

// SwaggerInfo holds exported Swagger metadata, in the shape swag
// normally generates. The template above carries only the general API
// info; the handler annotations in handlers.go are not reflected in its
// empty paths object.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "mDNS Bridge Admin API",
	Description:      "Health, stats, and recent-activity surface for the mDNS bridge.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
