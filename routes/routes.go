package routes

import (
	"net/http"

	"kirana/auth"
	"kirana/live"
	"kirana/mailer"
	"kirana/middleware"
	"kirana/orders"
	"kirana/payment"
	"kirana/products"
	"kirana/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddUserRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, m *mailer.Mailer) {
	router.POST("/api/user/signin", rl.Limit(auth.Signin))
	router.POST("/api/user/signup", rl.Limit(auth.Signup))
	router.POST("/api/user/forgot-password", rl.Limit(auth.ForgotPassword(m)))
	router.POST("/api/user/reset-password", rl.Limit(auth.ResetPassword))

	// The router cannot register /api/user/userlist next to /api/user/:id,
	// so the userlist sentinel is dispatched inside the wildcard handler.
	userList := middleware.RequireAdmin(auth.UserList)
	router.GET("/api/user/:id", middleware.Authenticate(
		func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			if ps.ByName("id") == "userlist" {
				userList(w, r, ps)
				return
			}
			auth.GetUser(w, r, ps)
		}))
	router.PUT("/api/user/:id", middleware.Authenticate(auth.UpdateUser))
	router.DELETE("/api/user/:id", middleware.Authenticate(middleware.RequireAdmin(auth.DeleteUser)))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	// getProduct, search and categories are sentinel ids on the wildcard
	// route; everything else resolves as a product id.
	router.GET("/api/product/:id",
		func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			switch ps.ByName("id") {
			case "getProduct":
				products.GetProducts(w, r, ps)
			case "search":
				products.Search(w, r, ps)
			case "categories":
				products.GetCategories(w, r, ps)
			default:
				products.GetProduct(w, r, ps)
			}
		})
	router.GET("/api/product/:id/:slug",
		func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			if ps.ByName("id") != "slug" {
				http.NotFound(w, r)
				return
			}
			products.GetProductBySlug(w, r, ps)
		})

	createProduct := middleware.Authenticate(middleware.RequireAdmin(products.CreateProduct))
	router.POST("/api/product/:id",
		func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			if ps.ByName("id") != "images" {
				http.NotFound(w, r)
				return
			}
			createProduct(w, r, ps)
		})
	router.POST("/api/product/:id/reviews", rl.Limit(middleware.Authenticate(products.AddReview)))
	router.PUT("/api/product/:id", middleware.Authenticate(middleware.RequireAdmin(products.UpdateProduct)))
	router.DELETE("/api/product/:id", middleware.Authenticate(middleware.RequireAdmin(products.DeleteProduct)))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, hub *live.Hub, provider payment.Provider) {
	router.POST("/api/order", rl.Limit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/order", middleware.Authenticate(middleware.RequireAdmin(orders.ListOrders)))

	summary := middleware.RequireAdmin(orders.Summary)
	updates := middleware.RequireAdmin(live.WebSocketHandler(hub))
	router.GET("/api/order/:id", middleware.Authenticate(
		func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			switch ps.ByName("id") {
			case "mine":
				orders.GetMyOrders(w, r, ps)
			case "summary":
				summary(w, r, ps)
			case "updates":
				updates(w, r, ps)
			default:
				orders.GetOrder(w, r, ps)
			}
		}))

	router.PUT("/api/order/:id/pay", rl.Limit(middleware.Authenticate(orders.PayOrder(provider))))
	router.PUT("/api/order/:id/deliver", middleware.Authenticate(middleware.RequireAdmin(orders.DeliverOrder)))
	router.POST("/api/order/:id/payment-session", rl.Limit(middleware.Authenticate(orders.CreatePaymentSession(provider))))
	router.GET("/api/order/:id/invoice", middleware.Authenticate(orders.PrintInvoice))
	router.DELETE("/api/order/:id", middleware.Authenticate(middleware.RequireAdmin(orders.DeleteOrder)))
}
