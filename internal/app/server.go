package app

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/opugacodez/frutaria/internal/handlers"
	"github.com/opugacodez/frutaria/internal/service"
	"github.com/opugacodez/frutaria/internal/store"
)

var apiPrefixes = []string{"/users", "/products", "/carts", "/img/"}

func NewServer(cfg Config) (*gin.Engine, func(), error) {
	// --- storage ---
	stores, err := store.Open(store.Options{
		Driver:  cfg.StoreDriver,
		DataDir: cfg.DataDir,
		DSN:     cfg.DBDSN,
	})
	if err != nil {
		return nil, nil, err
	}

	// --- gin ---
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(), corsMiddleware(cfg.CORSOrigins), handlers.NoStore())
	r.MaxMultipartMemory = cfg.MaxUploadMB << 20

	// product pictures live under the public directory
	r.Static("/img", filepath.Join(cfg.PublicDir, "img"))

	// --- services ---
	images := service.NewImageStore(cfg.PublicDir, cfg.ImageMaxWidth)
	users := service.NewUserService(stores.Users, stores.Carts)
	products := service.NewProductService(stores.Products, images)
	inventory := service.NewInventoryService(stores.Products)
	carts := service.NewCartService(stores.Carts)
	checkout := service.NewCheckoutService(carts, inventory)

	usersHTTP := handlers.NewUsersHTTP(users)
	productsHTTP := handlers.NewProductsHTTP(products, inventory)
	cartsHTTP := handlers.NewCartsHTTP(carts, checkout)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// users
	r.POST("/users/login", usersHTTP.Login)
	r.GET("/users", usersHTTP.List)
	r.GET("/users/:id", usersHTTP.Get)
	r.POST("/users", usersHTTP.Create)
	r.PUT("/users/:id", usersHTTP.Update)
	r.DELETE("/users/:id", usersHTTP.Delete)

	// products
	r.GET("/products", productsHTTP.List)
	r.GET("/products/export", productsHTTP.Export)
	r.GET("/products/:id", productsHTTP.Get)
	r.POST("/products", productsHTTP.Create)
	r.PUT("/products/:id", productsHTTP.Update)
	r.PATCH("/products/:id", productsHTTP.AdjustStock)
	r.DELETE("/products/:id", productsHTTP.Delete)

	// carts; :id is a user id or a cart id depending on the route
	r.GET("/carts", cartsHTTP.List)
	r.GET("/carts/:id", cartsHTTP.GetByUser)
	r.POST("/carts", cartsHTTP.Create)
	r.PUT("/carts/:id", cartsHTTP.Update)
	r.DELETE("/carts/:id", cartsHTTP.Delete)
	r.POST("/carts/:id/addItem", cartsHTTP.AddItem)
	r.POST("/carts/:id/checkout", cartsHTTP.CheckoutCart)
	r.DELETE("/carts/:id/items/:itemId", cartsHTTP.RemoveItem)
	r.DELETE("/carts/:id/items", cartsHTTP.ClearItems)

	// storefront pages, when a build of them sits in the public directory
	index := filepath.Join(cfg.PublicDir, "index.html")
	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		for _, prefix := range apiPrefixes {
			if strings.HasPrefix(p, prefix) {
				c.String(http.StatusNotFound, "not found")
				return
			}
		}
		if c.Request.Method == http.MethodGet {
			if page := filepath.Join(cfg.PublicDir, filepath.FromSlash(p)); isFile(page) && strings.HasPrefix(page, filepath.Clean(cfg.PublicDir)) {
				c.File(page)
				return
			}
			if isFile(index) {
				c.File(index)
				return
			}
		}
		c.String(http.StatusNotFound, "not found")
	})

	cleanup := func() { _ = stores.Close() }
	return r, cleanup, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
