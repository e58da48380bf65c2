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
	"strings"

	"github.com/spf13/cobra"
)

// batchUploadDocumentCmd represents the batchUploadDocument command
var batchUploadDocumentCmd = &cobra.Command{
	Use:   "batch-upload-document",
	Short: "Ingest every supported file in a directory",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		dirPath, _ := cmd.Flags().GetString("dir")
		userID, _ := cmd.Flags().GetString("user")

		if dirPath == "" {
			log.Fatal("--dir is required")
		}

		fileService := newFileServiceFromConfig(configPath)

		entries, err := os.ReadDir(dirPath)
		if err != nil {
			log.Fatalf("Failed to read directory: %v", err)
		}

		uploaded := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if ext != ".pdf" && ext != ".txt" && ext != ".md" {
				continue
			}

			f, err := os.Open(filepath.Join(dirPath, entry.Name()))
			if err != nil {
				log.Printf("Skipping %s: %v", entry.Name(), err)
				continue
			}
			contentType := mime.TypeByExtension(ext)
			doc, err := fileService.SaveDocument(context.Background(), userID, entry.Name(), contentType, f)
			f.Close()
			if err != nil {
				log.Printf("Failed to upload %s: %v", entry.Name(), err)
				continue
			}
			fmt.Printf("Uploaded %s (%d chars)\n", doc.FileName, doc.TextLength)
			uploaded++
		}
		fmt.Printf("Done: %d documents uploaded\n", uploaded)
	},
}

func init() {
	rootCmd.AddCommand(batchUploadDocumentCmd)

	batchUploadDocumentCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	batchUploadDocumentCmd.Flags().StringP("dir", "d", "", "Directory containing files to upload")
	batchUploadDocumentCmd.Flags().StringP("user", "u", "", "User the documents belong to")
}
