// Package docs registers the studio API's swagger document. Regenerate the
// full path listing with `swag init -g cmd/server/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "tags": [
        {"name": "Users", "description": "Registration, login and user management"},
        {"name": "Projects", "description": "Client projects, staff and contacts"},
        {"name": "Milestones", "description": "Ordered project milestones"},
        {"name": "Payments", "description": "Milestone payment tracking and reports"},
        {"name": "Tasks", "description": "Milestone tasks and the review flow"},
        {"name": "Comments", "description": "Project discussion"},
        {"name": "Bookings", "description": "Public studio session booking"},
        {"name": "Inquiries", "description": "Contact form"},
        {"name": "Content", "description": "Localized blog and portfolio"},
        {"name": "Uploads", "description": "Media uploads"}
    ],
    "paths": {},
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Studio API",
	Description:      "Client projects, milestones, payments and the public site of a creative studio.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
