// Package router はginエンジンを構築し、全ルートを登録します。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	dashboardhandler "stock_watch/internal/feature/dashboard/transport/handler"
	searchhandler "stock_watch/internal/feature/search/transport/handler"
	watchlisthandler "stock_watch/internal/feature/watchlist/transport/handler"
	"stock_watch/internal/platform/config"
	"stock_watch/internal/platform/http/handler"
	"stock_watch/internal/platform/http/middleware"
)

// Handlers はルーターに登録する各フィーチャーのハンドラーをまとめます。
type Handlers struct {
	Health    *handler.HealthHandler
	Watchlist *watchlisthandler.WatchlistHandler
	Search    *searchhandler.SearchHandler
	Dashboard *dashboardhandler.DashboardHandler
}

func NewRouter(cfg config.Server, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// ブラウザのダッシュボードから呼ばれるためCORSを許可
	corsCfg := cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	// ウォッチリスト
	wl := r.Group("/watchlist")
	{
		wl.GET("", h.Watchlist.List)
		wl.POST("", h.Watchlist.Add)
		wl.POST("/load", h.Watchlist.Load)
		wl.POST("/refresh", h.Watchlist.Refresh)
		wl.GET("/:symbol", h.Watchlist.Contains)
		wl.DELETE("/:symbol", h.Watchlist.Remove)
		wl.POST("/:symbol/toggle", h.Watchlist.Toggle)
	}

	// 銘柄検索
	r.GET("/search", h.Search.Current)
	r.GET("/search/:symbol", h.Search.Search)

	// ダッシュボード画面の状態とユーザー操作
	d := r.Group("/dashboard")
	{
		d.GET("", h.Dashboard.State)
		d.POST("/reload", h.Dashboard.Reload)
		d.POST("/search", h.Dashboard.Search)
		d.POST("/panel/toggle", h.Dashboard.TogglePanel)
		d.POST("/watchlist/:symbol/toggle", h.Dashboard.ToggleWatchlist)
		d.POST("/watchlist/:symbol/select", h.Dashboard.Select)
		d.DELETE("/watchlist/:symbol", h.Dashboard.Remove)
	}

	return r
}
