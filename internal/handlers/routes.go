package handlers

import "github.com/gofiber/fiber/v2"

func SetupRoutes(router fiber.Router, registerHandler *RegisterHandler) {
	router.Get("/", func(ctx *fiber.Ctx) error {
		return redirect(ctx, "/register")
	})
	router.Get("/register", registerHandler.GetRegister)
	router.Post("/register", registerHandler.PostRegister)
	router.Post("/register/field", registerHandler.PostField)
	router.Post("/register/ack", registerHandler.PostAcknowledge)
}
