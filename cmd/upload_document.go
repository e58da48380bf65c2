/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/studymate-be/config"
	"github.com/tieubaoca/studymate-be/database"
	"github.com/tieubaoca/studymate-be/repository"
	"github.com/tieubaoca/studymate-be/service"
	"go.uber.org/zap"
)

// uploadDocumentCmd represents the uploadDocument command
var uploadDocumentCmd = &cobra.Command{
	Use:   "upload-document",
	Short: "Ingest a local file into the document store",
	Long: `Reads a local PDF or text file, extracts its text and records it in the
document store exactly as the upload endpoint would. Useful for seeding
course materials without going through the HTTP API.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		filePath, _ := cmd.Flags().GetString("file")
		userID, _ := cmd.Flags().GetString("user")

		if filePath == "" {
			log.Fatal("--file is required")
		}

		fileService := newFileServiceFromConfig(configPath)

		f, err := os.Open(filePath)
		if err != nil {
			log.Fatalf("Failed to open file: %v", err)
		}
		defer f.Close()

		fileName := filepath.Base(filePath)
		contentType := mime.TypeByExtension(filepath.Ext(fileName))
		doc, err := fileService.SaveDocument(context.Background(), userID, fileName, contentType, f)
		if err != nil {
			log.Fatalf("Failed to upload document: %v", err)
		}
		fmt.Printf("Uploaded %s (%s, %d chars)\n", doc.FileName, doc.ID, doc.TextLength)
	},
}

// newFileServiceFromConfig wires the store and extraction services for the
// ingest commands.
func newFileServiceFromConfig(configPath string) *service.FileService {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	mongoClient, err := database.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}
	if err := mongoClient.Ping(context.Background(), nil); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	documentRepo := repository.NewDocumentRepo(
		mongoClient.Database(cfg.MongoDatabase).Collection("documents"),
	)
	return service.NewFileService(cfg.UploadDir, documentRepo, service.NewPDFService(logger), logger)
}

func init() {
	rootCmd.AddCommand(uploadDocumentCmd)

	uploadDocumentCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	uploadDocumentCmd.Flags().StringP("file", "f", "", "Path to the file to upload")
	uploadDocumentCmd.Flags().StringP("user", "u", "", "User the document belongs to")
}
