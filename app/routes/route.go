package routes

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/trinetrasoft/cloud-kitchen/app/configs"
	"github.com/trinetrasoft/cloud-kitchen/app/handlers"
	"github.com/trinetrasoft/cloud-kitchen/app/middlewares"
	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/repositories"
	"github.com/trinetrasoft/cloud-kitchen/app/services"
	"github.com/trinetrasoft/cloud-kitchen/app/services/events"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/renderer"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/sessions"
)

// NewRouter wires repositories, services and handlers onto the /api tree.
func NewRouter(db *gorm.DB, env configs.ENV, keys *configs.SessionKeys, publisher events.Publisher) http.Handler {
	rnd := renderer.New(!env.IsProduction())
	validate := validator.New()
	secure := env.IsProduction()

	userRepo := repositories.NewUserRepository(db)
	kitchenRepo := repositories.NewKitchenRepository(db)
	menuRepo := repositories.NewMenuItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	subRepo := repositories.NewSubscriptionRepository(db)

	provider := configs.NewPaymentProvider(env)
	authProvider := configs.NewAuthProvider(env, userRepo)

	var notifier services.OrderNotifier
	if mailCfg := env.MailerConfig(); mailCfg.Enabled() {
		notifier = services.NewMailer(mailCfg)
	}

	checkoutSvc := services.NewCheckoutService(orderRepo, menuRepo, subRepo, paymentRepo, userRepo, provider, publisher, notifier, env.PricingOptions())
	cartSvc := services.NewCartService(menuRepo, checkoutSvc)
	orderSvc := services.NewOrderService(orderRepo, kitchenRepo, publisher)
	kitchenSvc := services.NewKitchenService(kitchenRepo, menuRepo)
	subSvc := services.NewSubscriptionService(subRepo, provider)
	paymentSvc := services.NewPaymentService(provider, orderRepo, paymentRepo, subRepo, publisher)

	store := sessions.NewSessionStore(sessions.Options{
		AuthKey: keys.AuthKey,
		EncKey:  keys.EncKey,
		Dir:     env.SessionDir,
		Secure:  secure,
	})

	var issuer handlers.TokenIssuer
	if ti, ok := authProvider.(handlers.TokenIssuer); ok {
		issuer = ti
	}

	authHandler := handlers.NewAuthHandler(rnd, userRepo, issuer, secure, validate)
	cartHandler := handlers.NewCartHandler(rnd, cartSvc, store, validate)
	checkoutHandler := handlers.NewCheckoutHandler(rnd, checkoutSvc, store, validate)
	orderHandler := handlers.NewOrderHandler(rnd, orderSvc)
	kitchenHandler := handlers.NewKitchenHandler(rnd, kitchenSvc)
	dashboardHandler := handlers.NewDashboardHandler(rnd, orderSvc, kitchenSvc, validate)
	subHandler := handlers.NewSubscriptionHandler(rnd, subSvc, validate)
	webhookHandler := handlers.NewWebhookHandler(rnd, paymentSvc)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = rnd.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// gateway callbacks carry no session, so they sit outside CSRF
	api.HandleFunc("/webhooks/payment", webhookHandler.PaymentNotification).Methods(http.MethodPost)

	app := api.NewRoute().Subrouter()
	if env.CSRFEnabled {
		app.Use(middlewares.CSRF(keys.AuthKey, secure))
	}
	app.Use(middlewares.Authenticate(authProvider))

	app.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	app.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	app.HandleFunc("/kitchens", kitchenHandler.ListKitchens).Methods(http.MethodGet)
	app.HandleFunc("/kitchens/{id}", kitchenHandler.GetKitchen).Methods(http.MethodGet)
	app.HandleFunc("/menu", kitchenHandler.ListMenu).Methods(http.MethodGet)
	app.HandleFunc("/search", kitchenHandler.Search).Methods(http.MethodGet)
	app.HandleFunc("/subscription/plans", subHandler.Plans).Methods(http.MethodGet)

	app.HandleFunc("/cart", cartHandler.GetCart).Methods(http.MethodGet)
	app.HandleFunc("/cart", cartHandler.ClearCart).Methods(http.MethodDelete)
	app.HandleFunc("/cart/items", cartHandler.AddItem).Methods(http.MethodPost)
	app.HandleFunc("/cart/items/{lineId}", cartHandler.UpdateItem).Methods(http.MethodPatch)
	app.HandleFunc("/cart/items/{lineId}", cartHandler.RemoveItem).Methods(http.MethodDelete)
	app.HandleFunc("/cart/items/{lineId}/instructions", cartHandler.UpdateInstructions).Methods(http.MethodPut)

	dashboard := app.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(middlewares.RequireRole(rnd, models.RoleKitchenOwner))
	dashboard.HandleFunc("/kitchens", dashboardHandler.MyKitchens).Methods(http.MethodGet)
	dashboard.HandleFunc("/kitchens/{kitchenId}/menu-items", dashboardHandler.CreateMenuItem).Methods(http.MethodPost)
	dashboard.HandleFunc("/menu-items/{id}", dashboardHandler.UpdateMenuItem).Methods(http.MethodPut)
	dashboard.HandleFunc("/menu-items/{id}/availability", dashboardHandler.SetAvailability).Methods(http.MethodPatch)
	dashboard.HandleFunc("/orders", dashboardHandler.ListOrders).Methods(http.MethodGet)
	dashboard.HandleFunc("/orders/{id}/status", dashboardHandler.UpdateOrderStatus).Methods(http.MethodPatch)
	dashboard.HandleFunc("/orders/{id}/reject", dashboardHandler.RejectOrder).Methods(http.MethodPost)

	user := app.NewRoute().Subrouter()
	user.Use(middlewares.RequireUser(rnd))
	user.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)
	user.HandleFunc("/checkout", checkoutHandler.Checkout).Methods(http.MethodPost)
	user.HandleFunc("/orders", orderHandler.ListOrders).Methods(http.MethodGet)
	user.HandleFunc("/orders", checkoutHandler.CreateOrder).Methods(http.MethodPost)
	user.HandleFunc("/orders/{id}", orderHandler.GetOrder).Methods(http.MethodGet)
	user.HandleFunc("/subscription", subHandler.GetSubscription).Methods(http.MethodGet)
	user.HandleFunc("/subscription", subHandler.Subscribe).Methods(http.MethodPost)

	return middlewares.MethodOverrideMiddleware(router)
}
