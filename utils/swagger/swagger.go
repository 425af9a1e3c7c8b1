package swagger

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

type SwaggerConfig struct {
	Title         string
	SwaggerDocURL string
}

// swaggerPage is the template data; DocURL is already a quoted JS string literal
type swaggerPage struct {
	Title  string
	DocURL template.JS
}

const swaggerHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui.css" />
    <link rel="icon" type="image/png" href="https://unpkg.com/swagger-ui-dist@4.15.5/favicon-32x32.png" sizes="32x32" />
    <style>
        html { box-sizing: border-box; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin: 0; background: #fafafa; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>

    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-bundle.js" charset="UTF-8"> </script>
    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-standalone-preset.js" charset="UTF-8"> </script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: {{.DocURL}},
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                plugins: [
                    SwaggerUIBundle.plugins.DownloadUrl
                ],
                layout: "StandaloneLayout",
                docExpansion: "list",
                validatorUrl: null,
                supportedSubmitMethods: ['get', 'post', 'put', 'delete', 'patch']
            });
        };
    </script>
</body>
</html>`

// ServeSwaggerUI serves the Swagger UI page pointing at config.SwaggerDocURL
func ServeSwaggerUI(config SwaggerConfig) gin.HandlerFunc {
	if config.Title == "" {
		config.Title = "API Documentation"
	}
	if config.SwaggerDocURL == "" {
		config.SwaggerDocURL = "/swagger/doc.json"
	}

	tmpl := template.Must(template.New("swagger").Parse(swaggerHTML))
	page := swaggerPage{
		Title:  config.Title,
		DocURL: template.JS(strconv.Quote(config.SwaggerDocURL)),
	}

	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(c.Writer, page); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render Swagger UI"})
		}
	}
}

// ServeDoc serves the OpenAPI document registered with swag
func ServeDoc() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc()
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "API documentation is not registered"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}
