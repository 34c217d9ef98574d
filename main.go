package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"servedc-be/classifier"
	"servedc-be/config"
	"servedc-be/controllers"
	"servedc-be/routes"
	"servedc-be/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	snapshot, err := openSnapshot()
	if err != nil {
		log.Fatalf("Failed to open snapshot storage: %v", err)
	}

	postStore := store.New(snapshot)
	enricher := classifier.NewClient(context.Background(), os.Getenv("GEMINI_API_KEY"))
	controllers.Init(postStore, enricher)

	config.ConnectRedis()

	r := gin.Default()
	r.Use(cors.Default())

	routes.PostRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openSnapshot picks the snapshot backend: a Mongo document when
// MONGODB_URI is set, a local JSON file otherwise.
func openSnapshot() (store.Snapshotter, error) {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		snap, err := store.NewMongoSnapshot(uri)
		if err != nil {
			return nil, err
		}
		log.Println("Connected to MongoDB!")
		return snap, nil
	}

	path := os.Getenv("SNAPSHOT_PATH")
	if path == "" {
		path = "data/state.json"
	}
	return store.NewFileSnapshot(path)
}
