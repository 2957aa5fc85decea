package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"github.com/campuscare/campuscare-api/internal/adapter/api"
	"github.com/campuscare/campuscare-api/internal/adapter/api/handler"
	apimiddleware "github.com/campuscare/campuscare-api/internal/adapter/api/middleware"
	"github.com/campuscare/campuscare-api/internal/adapter/api/router"
	"github.com/campuscare/campuscare-api/internal/adapter/repository"
	"github.com/campuscare/campuscare-api/internal/infrastructure/firebase"
	"github.com/campuscare/campuscare-api/internal/infrastructure/ratelimit"
	"github.com/campuscare/campuscare-api/internal/infrastructure/storage"
	"github.com/campuscare/campuscare-api/internal/usecase"
	"github.com/campuscare/campuscare-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}

		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	staffRepo := repository.NewFirestoreStaffRepository(firestoreClient)
	complaintRepo := repository.NewFirestoreComplaintRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	limiter := ratelimit.NewRateLimiter()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	complaintUseCase := usecase.NewComplaintUseCase(complaintRepo, staffRepo, storageClient)
	staffUseCase := usecase.NewStaffUseCase(staffRepo, userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, staffRepo, firebaseAuthClient)

	handler.Setup(authUseCase, complaintUseCase, staffUseCase, userUseCase, limiter, cfg.UploadMaxBytes)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient, userRepo)
	roleMiddleware := apimiddleware.NewRoleMiddleware()

	router.Setup(e, authMiddleware, roleMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
