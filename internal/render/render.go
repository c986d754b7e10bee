package render

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/khanghh/cas-signup/internal/signup"
)

//go:embed templates/*.html
var templateFS embed.FS

var globalVars = fiber.Map{"siteName": "Sign Up"}

func InitValues(data fiber.Map) {
	globalVars = data
}

func NewHtmlEngine(templateDir string) *html.Engine {
	if templateDir != "" {
		return html.NewFileSystem(http.Dir(templateDir), ".html")
	}
	renderFS, _ := fs.Sub(templateFS, "templates")
	return html.NewFileSystem(http.FS(renderFS), ".html")
}

func RenderRegister(ctx *fiber.Ctx, data RegisterPageData) error {
	return ctx.Render("register", fiber.Map{
		"siteName":             globalVars["siteName"],
		"csrfToken":            data.CSRFToken,
		"name":                 data.Name,
		"email":                data.Email,
		"acceptedTerms":        data.AcceptedTerms,
		"success":              data.Success,
		"nameError":            data.FormErrors[signup.FieldName],
		"emailError":           data.FormErrors[signup.FieldEmail],
		"passwordError":        data.FormErrors[signup.FieldPassword],
		"confirmPasswordError": data.FormErrors[signup.FieldConfirmPassword],
		"acceptedTermsError":   data.FormErrors[signup.FieldAcceptedTerms],
	})
}

func RenderError(ctx *fiber.Ctx, code int, message string) error {
	return ctx.Status(code).Render("error", fiber.Map{
		"siteName": globalVars["siteName"],
		"code":     code,
		"message":  message,
	})
}
