package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"

	"image-sharing-server/config"
	_ "image-sharing-server/docs"
	"image-sharing-server/internal/handler"
	"image-sharing-server/internal/model"
	"image-sharing-server/internal/notifier"
	"image-sharing-server/internal/repository"
	"image-sharing-server/internal/security"
	"image-sharing-server/internal/service"
)

// @title Image-sharing-server
// @version 1.0
// @description REST API для обмена изображениями: пользователи, роли, изображения, теги и комментарии

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("файл .env не найден, используется окружение процесса")
	}

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRevokedTokenRepository(db)
	imageRepo := repository.NewImageRepository(db)
	tagRepo := repository.NewTagRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.S3AndRedis)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	transformService, err := service.NewTransformService(&cfg.Transform)
	if err != nil {
		log.Fatalf("Ошибка создания сервиса трансформаций: %v", err)
	}

	eventProducer := notifier.NewKafkaProducer(&cfg.Kafka)
	defer func() {
		if err := eventProducer.Close(); err != nil {
			log.Printf("Ошибка при закрытии Kafka producer: %v", err)
		}
	}()

	jwtService := security.NewJWTService(&cfg.JWT)
	authService := service.NewAuthenticationService(userRepo, tokenRepo, jwtService)
	userService := service.NewUserService(userRepo)
	imageService := service.NewImageService(imageRepo, cacheRepo, s3Service, transformService, eventProducer, time.Duration(cfg.TTL.S3AndRedis)*time.Second)
	tagService := service.NewTagService(tagRepo)
	commentService := service.NewCommentService(commentRepo, imageRepo, eventProducer)

	// retention и interval валидируются при загрузке конфигурации
	retention, _ := time.ParseDuration(cfg.Cleanup.Retention)
	interval, _ := time.ParseDuration(cfg.Cleanup.Interval)
	tokenCleaner := service.NewTokenCleaner(tokenRepo, interval, retention)
	go tokenCleaner.Run(ctx)

	authHandler := handler.NewAuthenticationHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	imageHandler := handler.NewImageHandler(imageService)
	tagHandler := handler.NewTagHandler(tagService)
	commentHandler := handler.NewCommentHandler(commentService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupUserRoutes(router, authHandler, userHandler, authService)
	setupImageRoutes(router, imageHandler, commentHandler, authService)
	setupTagRoutes(router, tagHandler, authService)
	setupCommentRoutes(router, commentHandler, authService)
	setupAdminRoutes(router, userHandler, authService)

	runServer(ctx, srv)
}

func setupUserRoutes(r chi.Router, authHandler *handler.AuthenticationHandler, userHandler *handler.UserHandler, authService *service.AuthenticationService) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/signup", userHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Get("/refresh_token", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(security.AuthenticationMiddleware(authService))
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
			r.Patch("/me/information", userHandler.UpdateInformation)
			r.Get("/{username}", userHandler.GetUser)
		})
	})
}

func setupImageRoutes(r chi.Router, imageHandler *handler.ImageHandler, commentHandler *handler.CommentHandler, authService *service.AuthenticationService) {
	readAccess := security.NewRolesAccess(model.RoleAdmin, model.RoleModerator, model.RoleUser)

	r.Route("/api/images", func(r chi.Router) {
		r.Use(security.AuthenticationMiddleware(authService))
		r.Use(readAccess.Middleware)

		r.Get("/", imageHandler.ListImages)
		r.Post("/", imageHandler.UploadImage)
		r.Get("/{uuid}", imageHandler.GetImage)
		r.Get("/{uuid}/comments", commentHandler.ListComments)
		r.Post("/{uuid}/transform", imageHandler.TransformImage)

		// владелец тоже может менять и удалять свои изображения,
		// поэтому проверка прав доводится до конца в сервисном слое
		r.Patch("/{uuid}", imageHandler.UpdateImage)
		r.Delete("/{uuid}", imageHandler.DeleteImage)
	})
}

func setupTagRoutes(r chi.Router, tagHandler *handler.TagHandler, authService *service.AuthenticationService) {
	writeAccess := security.NewRolesAccess(model.RoleAdmin, model.RoleModerator)

	r.Route("/api/tags", func(r chi.Router) {
		r.Use(security.AuthenticationMiddleware(authService))

		r.Get("/", tagHandler.ListTags)
		r.Get("/{id}", tagHandler.GetTag)
		r.Post("/", tagHandler.CreateTag)

		r.Group(func(r chi.Router) {
			r.Use(writeAccess.Middleware)
			r.Patch("/{id}", tagHandler.UpdateTag)
			r.Delete("/{id}", tagHandler.DeleteTag)
		})
	})
}

func setupCommentRoutes(r chi.Router, commentHandler *handler.CommentHandler, authService *service.AuthenticationService) {
	deleteAccess := security.NewRolesAccess(model.RoleAdmin, model.RoleModerator)

	r.Route("/api/comments", func(r chi.Router) {
		r.Use(security.AuthenticationMiddleware(authService))

		r.Post("/", commentHandler.CreateComment)
		r.Patch("/{id}", commentHandler.UpdateComment)

		r.Group(func(r chi.Router) {
			r.Use(deleteAccess.Middleware)
			r.Delete("/{id}", commentHandler.DeleteComment)
		})
	})
}

func setupAdminRoutes(r chi.Router, userHandler *handler.UserHandler, authService *service.AuthenticationService) {
	adminAccess := security.NewRolesAccess(model.RoleAdmin)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(security.AuthenticationMiddleware(authService))
		r.Use(adminAccess.Middleware)

		r.Get("/users", userHandler.ListUsers)
		r.Patch("/users/{uuid}/role", userHandler.ChangeRole)
		r.Patch("/users/{uuid}/ban", userHandler.SetBanned)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
