package routes

import (
	"net/http"

	"foodgram/auth"
	"foodgram/ingredients"
	"foodgram/middleware"
	"foodgram/profile"
	"foodgram/ratelim"
	"foodgram/recipes"
	"foodgram/tags"
	"foodgram/utils"
	"foodgram/ws"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/api/users", middleware.OptionalAuth(profile.GetUsers))
	router.GET("/api/users/me", middleware.Authenticate(profile.GetMe))
	router.GET("/api/users/subscriptions", middleware.Authenticate(profile.GetSubscriptions))
	router.GET("/api/users/user/:id", middleware.OptionalAuth(profile.GetUser))
	router.POST("/api/users/user/:id/subscribe", middleware.Authenticate(profile.Subscribe))
	router.DELETE("/api/users/user/:id/subscribe", middleware.Authenticate(profile.Unsubscribe))
	router.PUT("/api/users/me/avatar", middleware.Authenticate(profile.SetAvatar))
	router.DELETE("/api/users/me/avatar", middleware.Authenticate(profile.DeleteAvatar))
}

func AddRecipeRoutes(router *httprouter.Router) {
	router.GET("/api/recipes", middleware.OptionalAuth(recipes.GetRecipes))
	router.POST("/api/recipes", middleware.Authenticate(recipes.CreateRecipe))
	router.GET("/api/recipes/download_shopping_cart", middleware.Authenticate(recipes.DownloadShoppingCart))
	router.GET("/api/recipes/recipe/:id", middleware.OptionalAuth(recipes.GetRecipe))
	router.PATCH("/api/recipes/recipe/:id", middleware.Authenticate(recipes.UpdateRecipe))
	router.DELETE("/api/recipes/recipe/:id", middleware.Authenticate(recipes.DeleteRecipe))
	router.POST("/api/recipes/recipe/:id/favorite", middleware.Authenticate(recipes.AddFavorite))
	router.DELETE("/api/recipes/recipe/:id/favorite", middleware.Authenticate(recipes.RemoveFavorite))
	router.POST("/api/recipes/recipe/:id/shopping_cart", middleware.Authenticate(recipes.AddToCart))
	router.DELETE("/api/recipes/recipe/:id/shopping_cart", middleware.Authenticate(recipes.RemoveFromCart))
	router.GET("/api/recipes/recipe/:id/get-link", middleware.OptionalAuth(recipes.GetShortLink))
	router.GET("/api/recipes/recipe/:id/qr", middleware.OptionalAuth(recipes.ShortLinkQR))
	router.GET("/s/:code", recipes.ResolveShortLink)
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/tags", tags.GetTags)
	router.GET("/api/tags/:id", tags.GetTag)
	router.POST("/api/tags", middleware.Authenticate(tags.CreateTag))
	router.GET("/api/ingredients", ingredients.GetIngredients)
	router.GET("/api/ingredients/:id", ingredients.GetIngredient)
}

func AddStreamRoutes(router *httprouter.Router, hub *ws.Hub) {
	router.GET("/ws/updates", middleware.OptionalAuth(ws.UpdatesHandler(hub)))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
	router.ServeFiles("/static/recipepic/*filepath", http.Dir("static/recipepic"))

	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
	})
}
