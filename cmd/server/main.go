package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social-system/config"
	"social-system/internal/handler"
	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/internal/service"
	dbPkg "social-system/pkg/db"
	"social-system/pkg/jwt"
	"social-system/pkg/logger"
	redisPkg "social-system/pkg/redis"
	"social-system/pkg/response"
	"social-system/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== 社交系统启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 初始化数据库连接
	if _, err := dbPkg.InitDB(cfg.Database); err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	// 3.1 自动迁移表结构
	if err := dbPkg.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostLike{},
		&model.Comment{},
		&model.CommentLike{},
		&model.Friendship{},
	); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 3.2 初始化Redis（缓存与在线状态，不可用时降级到数据库）
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		log.Warn("Redis连接失败，缓存与在线状态功能降级", zap.Error(err))
	} else {
		defer redisPkg.Close()
		log.Info("Redis连接成功")
	}

	// 3.3 初始化业务服务
	jwtSvc := jwt.NewJWTService(cfg.JWT)
	db := dbPkg.GetDB()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	friendRepo := repository.NewFriendshipRepository(db)

	userSvc := service.NewUserService(userRepo, jwtSvc)
	postSvc := service.NewPostService(postRepo)
	commentSvc := service.NewCommentService(commentRepo, postRepo)
	friendSvc := service.NewFriendshipService(friendRepo, userRepo)
	fileSvc, err := service.NewFileService(cfg.Upload)
	if err != nil {
		log.Fatal("初始化文件服务失败", zap.Error(err))
	}
	paymentSvc := service.NewPaymentService(cfg.Stripe)

	userHandler := handler.NewUserHandler(userSvc)
	postHandler := handler.NewPostHandler(postSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	friendHandler := handler.NewFriendshipHandler(friendSvc)
	fileHandler := handler.NewFileHandler(fileSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)

	// 4. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	router := gin.New()

	// 注入jwt_config/ws_config到Gin context，供WebSocket使用
	router.Use(func(c *gin.Context) {
		c.Set("jwt_config", cfg.JWT)
		c.Set("ws_config", cfg.WebSocket)
		c.Next()
	})

	// 使用中间件
	router.Use(logger.LoggerMiddleware())      // 自定义日志中间件
	router.Use(logger.ErrorLoggerMiddleware()) // 错误日志中间件

	// 6. 设置基础路由
	setupBasicRoutes(router)

	// 6.1 绑定业务路由
	auth := jwtSvc.AuthMiddleware()

	// 认证（公开接口）
	router.POST("/register", userHandler.Register)
	router.POST("/login", userHandler.Login)

	// 用户（需要认证）
	users := router.Group("/users")
	users.Use(auth)
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PATCH("/profile", userHandler.UpdateProfile)
		users.POST("/logout", userHandler.Logout)
		users.GET("/online", userHandler.GetOnlineUsers)
		users.GET("/online/:userId", userHandler.CheckUserOnline)
	}

	// 帖子
	posts := router.Group("/posts")
	{
		posts.POST("", auth, postHandler.Create)
		posts.GET("", postHandler.Feed)
		posts.GET("/user/:userId", postHandler.ListByUser)
		posts.GET("/:id", postHandler.Get)
		posts.PATCH("/:id", auth, postHandler.Update)
		posts.DELETE("/:id", auth, postHandler.Delete)
		posts.POST("/:id/like", auth, postHandler.Like)
	}

	// 评论
	comments := router.Group("/comments")
	{
		comments.POST("", auth, commentHandler.Create)
		comments.GET("/post/:postId", commentHandler.ListByPost)
		comments.GET("/:id", commentHandler.Get)
		comments.PATCH("/:id", auth, commentHandler.Update)
		comments.DELETE("/:id", auth, commentHandler.Delete)
		comments.POST("/:id/like", auth, commentHandler.Like)
	}

	// 好友关系（需要认证）
	friends := router.Group("/friends")
	friends.Use(auth)
	{
		friends.POST("/request", friendHandler.SendRequest)
		friends.PATCH("/request/:id", friendHandler.Respond)
		friends.GET("", friendHandler.ListFriends)
		friends.GET("/requests/pending", friendHandler.ListPending)
		friends.GET("/requests/sent", friendHandler.ListSent)
		friends.GET("/status/:userId", friendHandler.Status)
		friends.DELETE("/:friendshipId", friendHandler.Remove)
	}

	// 文件
	files := router.Group("/files")
	{
		files.POST("/upload", auth, fileHandler.Upload)
		files.GET("/:filename", fileHandler.Download)
		files.DELETE("/:filename", auth, fileHandler.Delete)
	}

	// 支付（需要认证）
	payments := router.Group("/payments")
	payments.Use(auth)
	{
		payments.POST("/create-intent", paymentHandler.CreateIntent)
	}

	// WebSocket路由
	router.GET("/ws", websocket.WsHandler)

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	// 设置关闭超时
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 关闭HTTP服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupBasicRoutes 设置基础路由
func setupBasicRoutes(router *gin.Engine) {
	// 健康检查
	// 完整url为：http://localhost:8080/health
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		}
		response.Success(c, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 根路径
	// 完整url为：http://localhost:8080/
	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "欢迎使用社交系统",
			"version": "1.0.0",
		})
	})
}
