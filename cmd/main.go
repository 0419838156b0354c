package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Xalars/fairytales.uz-sub000/application/services"
	"github.com/Xalars/fairytales.uz-sub000/config"
	"github.com/Xalars/fairytales.uz-sub000/infrastructure/adapters"
	"github.com/Xalars/fairytales.uz-sub000/infrastructure/gin_interface/controllers"
)

func main() {
	// Local development convenience; in deployment the environment is real.
	_ = godotenv.Load()

	logLevel := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		parsed, err := zerolog.ParseLevel(raw)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to parse LOG_LEVEL")
		}
		logLevel = parsed
	}
	logger := adapters.NewZerologWrapper(logLevel)

	serverConfig := config.GetServerConfig()

	gptConfig, err := config.GetGptConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get gpt config")
	}

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get eleven labs config")
	}

	dalleConfig, err := config.GetDaLLeConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dalle config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	postgresConfig, err := config.GetPostgresConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get postgres config")
	}

	redisConfig, err := config.GetRedisConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get redis config")
	}

	panicHandler := func(p interface{}) {
		logger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	sess, err := session.NewSession(&aws.Config{Region: aws.String(s3Config.Region)})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create aws session")
	}
	s3Client := s3.New(sess)

	pool, err := pgxpool.New(context.Background(), postgresConfig.DatabaseUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to postgres")
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
	})

	contentFetcher := adapters.NewContentFetcher(logger)

	chatCompleter := adapters.NewOpenAIChatCompleter(logger, gptConfig, workerPool)
	speechSynthesizer := adapters.NewElevenLabsSynthesizer(contentFetcher, elevenLabsConfig)
	imageGenerator := adapters.NewDalleImageGenerator(contentFetcher, dalleConfig, logger)
	mediaStore := adapters.NewS3MediaStore(s3Client, s3Config)
	storyRepository := adapters.NewPostgresStoryRepository(logger, pool)
	generationLock := adapters.NewRedisGenerationLock(logger, redisClient, redisConfig.LockTtl)

	storyGenerator := services.NewStoryGenerator(logger, chatCompleter)
	storyStreamer := services.NewStoryStreamer(logger, chatCompleter)
	storyModerator := services.NewStoryModerator(logger, chatCompleter)
	audioSynthesizer := services.NewAudioSynthesizer(logger, speechSynthesizer, mediaStore, storyRepository, generationLock)
	coverImageCreator := services.NewCoverImageCreator(logger, imageGenerator, mediaStore, storyRepository, generationLock)

	pipelineController := controllers.NewPipelineController(logger, storyGenerator, storyStreamer,
		storyModerator, audioSynthesizer, coverImageCreator)
	storyController := controllers.NewStoryController(logger, storyRepository)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	// The browser client calls these endpoints cross-origin; preflight
	// OPTIONS requests are answered by the CORS middleware.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	pipelineController.RegisterRoutes(router)
	storyController.RegisterRoutes(router)

	if err := router.Run(":" + serverConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
