package routes

import (
	"github.com/shashiranjanraj/vyapar/app/controllers"
	"github.com/shashiranjanraj/vyapar/pkg/middleware"
	"github.com/shashiranjanraj/vyapar/pkg/router"
	"github.com/shashiranjanraj/vyapar/pkg/session"
)

// RegisterAPI mounts the seven endpoints. /register and /login are public;
// everything else requires a live session.
func RegisterAPI(r *router.Router, authC *controllers.AuthController, orderC *controllers.OrderController, sessions *session.Manager) {
	r.Post("/register", "auth.register", authC.Register)
	r.Post("/login", "auth.login", authC.Login)

	protected := r.Group("", middleware.Auth(sessions))
	protected.Get("/logout", "auth.logout", authC.Logout)
	protected.Post("/orders", "orders.create", orderC.Create)
	protected.Get("/orders", "orders.list", orderC.List)
	protected.Put("/orders/{id}", "orders.update", orderC.Update)
	protected.Delete("/orders/{id}", "orders.delete", orderC.Delete)
}
