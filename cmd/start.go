/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/studymate-be/config"
	"github.com/tieubaoca/studymate-be/database"
	"github.com/tieubaoca/studymate-be/handler"
	"github.com/tieubaoca/studymate-be/repository"
	"github.com/tieubaoca/studymate-be/service"
	"github.com/tieubaoca/studymate-be/types"
	"go.uber.org/zap"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Q&A server",
	Long:  `Starts the HTTP server that handles document uploads and grounded question answering`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		debug, _ := cmd.Flags().GetBool("debug")
		logger, err := newLogger(debug)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logger.Sync()

		// Clients are built once here and injected; requests share no
		// other state.
		mongoClient, err := database.NewMongoClient(cfg.MongoURI)
		if err != nil {
			logger.Fatal("Failed to create MongoDB client", zap.Error(err))
		}
		if err := mongoClient.Ping(context.Background(), nil); err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		documentRepo := repository.NewDocumentRepo(
			mongoClient.Database(cfg.MongoDatabase).Collection("documents"),
		)

		rankService := service.NewRankService(service.RankConfig{
			MinTokenLength:    cfg.Ranking.MinTokenLength,
			WindowBefore:      cfg.Ranking.WindowBefore,
			WindowAfter:       cfg.Ranking.WindowAfter,
			NoMatchPrefix:     cfg.Ranking.NoMatchPrefix,
			LowScoreThreshold: cfg.Ranking.LowScoreThreshold,
			TopChunks:         cfg.Ranking.TopChunks,
		})
		aiService, err := service.NewOpenAIService(cfg.AI)
		if err != nil {
			logger.Fatal("Failed to configure AI service", zap.Error(err))
		}
		answerService := service.NewAnswerService(documentRepo, rankService, aiService, logger)

		pdfService := service.NewPDFService(logger)
		fileService := service.NewFileService(cfg.UploadDir, documentRepo, pdfService, logger)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		askHandler := handler.NewAskHandler(answerService, logger)
		uploadHandler := handler.NewUploadHandler(fileService, logger)
		documentHandler := handler.NewDocumentHandler(documentRepo, cfg.UploadDir, logger)

		// Setup routes
		router := chi.NewRouter()
		router.Use(chimiddleware.Recoverer)
		router.Use(corsHandler.Middleware)
		router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			json.NewEncoder(w).Encode(types.ErrorResponse{Error: "Method not allowed"})
		})

		router.Post("/api/v1/ask", askHandler.HandleAsk())
		router.Post("/api/v1/documents/upload", uploadHandler.HandleUpload())
		router.Get("/api/v1/documents", documentHandler.HandleList())
		router.Get("/api/v1/documents/file", documentHandler.ServeDocument())
		router.Get("/health", handler.HandleHealth())

		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	},
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	startServerCmd.Flags().Bool("debug", false, "enable debug logging")
}
