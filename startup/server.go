package startup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking_service/authorization"
	"booking_service/casbinAuthorization"
	"booking_service/domain"
	"booking_service/handlers"
	application "booking_service/service"
	"booking_service/startup/config"
	store2 "booking_service/store"

	"github.com/casbin/casbin"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Server struct {
	config *config.Config
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) Start() {
	logger := server.initLogger()

	if server.config.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	jwtKey := []byte(server.config.JWTSecret)

	tracer, shutdownTracer := server.initTracer(logger)
	defer shutdownTracer()

	accountStore, accommodationStore, reservationStore := server.initStores(logger)

	accountService := application.NewAccountService(accountStore, jwtKey, tracer)
	accommodationService := application.NewAccommodationService(accommodationStore, tracer)
	reservationService := application.NewReservationService(reservationStore, tracer)
	reportService := application.NewReportService(reservationStore, tracer)
	importService := application.NewImportService(reservationService, tracer)

	authHandler := handlers.NewAuthHandler(logger, accountService, tracer)
	accommodationHandler := handlers.NewAccommodationHandler(logger, accommodationService, tracer)
	reservationHandler := handlers.NewReservationHandler(logger, reservationService, tracer)
	reportHandler := handlers.NewReportHandler(logger, reportService, importService, tracer)

	enforcer, err := casbin.NewEnforcerSafe(server.config.CasbinModel, server.config.CasbinPolicy)
	if err != nil {
		log.Fatal("Cannot load authorization policy: ", err)
	}

	authenticate := authorization.Authenticate(jwtKey)

	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)
	router.Use(casbinAuthorization.CasbinMiddleware(enforcer, jwtKey, logger))

	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	authHandler.Init(router)
	accommodationHandler.Init(router, authenticate)
	reservationHandler.Init(router, authenticate)
	reportHandler.Init(router, authenticate)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE"}),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", server.config.Port),
		Handler:      cors(router),
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Info("Server listening on port ", server.config.Port)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	sig := <-c
	logger.Info("Received terminate, graceful shutdown ", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Error shutting down server: ", err)
	}
	logger.Info("Server gracefully stopped")
}

func (server *Server) initLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rotator := &lumberjack.Logger{
		Filename:   server.config.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, rotator))

	return logger
}

// initTracer wires the jaeger exporter when an address is configured and
// falls back to a noop tracer otherwise.
func (server *Server) initTracer(logger *logrus.Logger) (trace.Tracer, func()) {
	if server.config.JaegerAddress == "" {
		return trace.NewNoopTracerProvider().Tracer("booking_service"), func() {}
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(server.config.JaegerAddress)))
	if err != nil {
		logger.Fatal("Failed to initialize exporter: ", err)
	}

	tp := newTraceProvider(exp)
	otel.SetTracerProvider(tp)

	shutdown := func() {
		_ = tp.Shutdown(context.Background())
	}
	return tp.Tracer("booking_service"), shutdown
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("booking_service"),
		),
	)
	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}

func (server *Server) initStores(logger *logrus.Logger) (domain.AccountStore, domain.AccommodationStore, domain.ReservationStore) {
	if server.config.StoreBackend == "mongo" {
		client := server.initMongoClient()
		return store2.NewAccountMongoDBStore(client),
			store2.NewAccommodationMongoDBStore(client),
			store2.NewReservationMongoDBStore(client)
	}

	db, err := store2.NewFileDatabase(server.config.DBPath)
	if err != nil {
		logger.Fatal("Cannot open database file: ", err)
	}
	return store2.NewAccountFileStore(db),
		store2.NewAccommodationFileStore(db),
		store2.NewReservationFileStore(db)
}

func (server *Server) initMongoClient() *mongo.Client {
	client, err := store2.GetClient(server.config.BookingDBHost, server.config.BookingDBPort)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func healthCheck(rw http.ResponseWriter, h *http.Request) {
	_ = json.NewEncoder(rw).Encode(map[string]interface{}{
		"ok": true,
		"ts": time.Now().UnixMilli(),
	})
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}
