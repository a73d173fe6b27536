package router

import (
	"time"

	"github.com/glaucoaluno/AjudaOngs/internal/config"
	"github.com/glaucoaluno/AjudaOngs/internal/handler"
	"github.com/glaucoaluno/AjudaOngs/internal/middleware"
	"github.com/glaucoaluno/AjudaOngs/internal/repository"
	"github.com/glaucoaluno/AjudaOngs/internal/service"
	"github.com/glaucoaluno/AjudaOngs/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositórios ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	doadorRepo := repository.NewDoadorRepository(db)
	familiaRepo := repository.NewFamiliaRepository(db)
	doacaoRepo := repository.NewDoacaoRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	doacaoFamiliaRepo := repository.NewDoacaoFamiliaRepository(db)
	movimentoRepo := repository.NewMovimentoEstoqueRepository(db)

	// ── Serviços ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	doadorSvc := service.NewDoadorService(doadorRepo)
	familiaSvc := service.NewFamiliaService(familiaRepo)
	estoqueSvc := service.NewEstoqueService(produtoRepo, movimentoRepo, cfg.EstoqueEstrito)
	produtoSvc := service.NewProdutoService(produtoRepo, movimentoRepo, rdb)
	doacaoFamiliaSvc := service.NewDoacaoFamiliaService(doacaoFamiliaRepo, familiaRepo, produtoRepo, estoqueSvc, rdb)

	// Dispatcher — injetado nos serviços que enfileiram jobs assíncronos
	dispatcher := worker.NewDispatcher(rdb)

	doacaoSvc := service.NewDoacaoService(doacaoRepo, produtoRepo, doadorRepo, dispatcher, rdb, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	doadoresH := handler.NewDoadoresHandler(doadorSvc)
	familiasH := handler.NewFamiliasHandler(familiaSvc)
	doacoesH := handler.NewDoacoesHandler(doacaoSvc)
	doacoesFamiliasH := handler.NewDoacoesFamiliasHandler(doacaoFamiliaSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)

	// ── Rotas ────────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	r.GET("/v1/auth/me", jwtMW, authH.Me)
	v1 := r.Group("/v1", jwtMW)
	{
		doadores := v1.Group("/doadores")
		{
			doadores.POST("", doadoresH.Criar)
			doadores.GET("", doadoresH.Listar)
			doadores.GET("/:id", doadoresH.ObterPorID)
			doadores.GET("/buscar/:email", doadoresH.BuscarPorEmail)
			doadores.PUT("/:id", doadoresH.Atualizar)
			doadores.DELETE("/:id", doadoresH.Remover)
		}

		familias := v1.Group("/familias")
		{
			familias.POST("", familiasH.Criar)
			familias.GET("", familiasH.Listar)
			familias.GET("/:id", familiasH.ObterPorID)
			familias.PUT("/:id", familiasH.Atualizar)
			familias.DELETE("/:id", familiasH.Remover)
		}

		doacoes := v1.Group("/doacoes")
		{
			doacoes.POST("", doacoesH.Registrar)
			doacoes.GET("", doacoesH.Listar)
			doacoes.GET("/:id", doacoesH.ObterPorID)
			doacoes.PATCH("/:id/entregar", doacoesH.MarcarEntregue)
			doacoes.GET("/:id/comprovante", doacoesH.GerarComprovante)
			doacoes.DELETE("/:id", doacoesH.Remover)
		}

		doacoesFamilias := v1.Group("/doacoes-familias")
		{
			doacoesFamilias.POST("", doacoesFamiliasH.Registrar)
			doacoesFamilias.GET("", doacoesFamiliasH.Listar)
			doacoesFamilias.GET("/:id", doacoesFamiliasH.ObterPorID)
			doacoesFamilias.PUT("/:id", doacoesFamiliasH.Atualizar)
			doacoesFamilias.DELETE("/:id", doacoesFamiliasH.Remover)
		}

		produtos := v1.Group("/produtos")
		{
			produtos.GET("", produtosH.Listar)
			produtos.GET("/disponiveis", produtosH.ListarDisponiveis)
			produtos.GET("/:id", produtosH.ObterPorID)
			produtos.GET("/:id/movimentos", produtosH.ListarMovimentos)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
