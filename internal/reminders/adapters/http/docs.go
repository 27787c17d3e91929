package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

const swaggerUIPage = `<!DOCTYPE html>
<html>
<head>
<title>%[1]s - Swagger UI</title>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: "%[2]s", dom_id: "#swagger-ui", deepLinking: true});
</script>
</body>
</html>`

const redocPage = `<!DOCTYPE html>
<html>
<head>
<title>%[1]s - ReDoc</title>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
<redoc spec-url="%[2]s"></redoc>
<script src="https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js"></script>
</body>
</html>`

func htmlHandler(page string) fiber.Handler {
	body := fmt.Sprintf(page, APITitle, OpenAPIPath)
	return func(ctx fiber.Ctx) error {
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return ctx.SendString(body)
	}
}

func openAPIHandler(doc []byte) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return ctx.Send(doc)
	}
}
