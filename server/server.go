package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filippo.io/age"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	prover "gnark-aes-block/libraries/prover/impl"
	verifier "gnark-aes-block/libraries/verifier/impl"
	"gnark-aes-block/utils"
)

// Response is the envelope for every JSON reply.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type IdentityResponse struct {
	PublicKey string `json:"public_key"`
}

// ProveRequest carries the prover input params sealed to this server's age
// recipient, so key material never crosses the wire in the clear.
type ProveRequest struct {
	EncryptedParams []byte `json:"encrypted_params"`
}

type ProveResponse struct {
	RequestID string `json:"request_id"`
	Result    []byte `json:"result"`
}

type VerifyRequest struct {
	Params []byte `json:"params"`
}

type VerifyResponse struct {
	RequestID string `json:"request_id"`
	Valid     bool   `json:"valid"`
}

type Server struct {
	Identity *age.X25519Identity
}

func NewServer() (*Server, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("failed to generate identity: %v", err)
	}
	return &Server{Identity: identity}, nil
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, Response{Status: "success", Message: "Server is up"})
}

func (s *Server) identity(c echo.Context) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   IdentityResponse{PublicKey: s.Identity.Recipient().String()},
	})
}

func (s *Server) prove(c echo.Context) error {
	requestID := uuid.New().String()
	var req ProveRequest
	if err := c.Bind(&req); err != nil {
		log.Errorf("[%s] Failed to bind request: %v", requestID, err)
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Invalid request format"})
	}
	if len(req.EncryptedParams) == 0 {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Encrypted params are required"})
	}

	params, err := utils.AgeDecrypt(req.EncryptedParams, s.Identity)
	if err != nil {
		log.Errorf("[%s] Failed to decrypt params: %v", requestID, err)
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Cannot decrypt params"})
	}

	res, err := proveSafe(params)
	if err != nil {
		log.Errorf("[%s] Proving failed: %v", requestID, err)
		return c.JSON(http.StatusUnprocessableEntity, Response{Status: "error", Message: "Proving failed"})
	}
	log.Infof("[%s] Proof generated", requestID)
	return c.JSON(http.StatusOK, Response{Status: "success", Data: ProveResponse{RequestID: requestID, Result: res}})
}

func (s *Server) verify(c echo.Context) error {
	requestID := uuid.New().String()
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		log.Errorf("[%s] Failed to bind request: %v", requestID, err)
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Invalid request format"})
	}
	if len(req.Params) == 0 {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Params are required"})
	}

	valid := verifier.Verify(req.Params)
	log.Infof("[%s] Verification result: %t", requestID, valid)
	return c.JSON(http.StatusOK, Response{Status: "success", Data: VerifyResponse{RequestID: requestID, Valid: valid}})
}

// the prover panics on malformed witness data, keep that inside the handler
func proveSafe(params []byte) (res []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return prover.Prove(params), nil
}

func initAlgorithms(resourcesDir string, identity age.Identity) error {
	algorithms := []struct {
		id       uint8
		filename string
	}{
		{prover.AES_128_BLOCK, "aes128_block"},
		{prover.AES_128_BLOCK_KNOWN_PT, "aes128_block_known_pt"},
	}

	for _, alg := range algorithms {
		r1cs, err := os.ReadFile(resourcesDir + "/r1cs." + alg.filename)
		if err != nil {
			return fmt.Errorf("failed to read r1cs for %s: %v", alg.filename, err)
		}
		pk, err := os.ReadFile(resourcesDir + "/pk." + alg.filename)
		if err != nil {
			return fmt.Errorf("failed to read proving key for %s: %v", alg.filename, err)
		}
		if identity != nil {
			pk, err = utils.AgeDecrypt(pk, identity)
			if err != nil {
				return fmt.Errorf("failed to decrypt proving key for %s: %v", alg.filename, err)
			}
		}
		if !prover.InitAlgorithm(alg.id, pk, r1cs) {
			return fmt.Errorf("failed to init prover for %s", alg.filename)
		}

		vk, err := os.ReadFile(resourcesDir + "/vk." + alg.filename)
		if err != nil {
			return fmt.Errorf("failed to read verifying key for %s: %v", alg.filename, err)
		}
		if !verifier.InitVerifier(alg.id, vk) {
			return fmt.Errorf("failed to init verifier for %s", alg.filename)
		}
	}
	return nil
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	resourcesDir := os.Getenv("RESOURCES_DIR")
	if resourcesDir == "" {
		resourcesDir = "../resources/gnark"
	}

	// AGE_IDENTITY unlocks proving keys that keygen sealed with AGE_RECIPIENT
	var pkIdentity age.Identity
	if identityStr := os.Getenv("AGE_IDENTITY"); identityStr != "" {
		id, err := age.ParseX25519Identity(identityStr)
		if err != nil {
			log.Fatalf("Invalid AGE_IDENTITY: %v", err)
		}
		pkIdentity = id
	}

	if err := initAlgorithms(resourcesDir, pkIdentity); err != nil {
		log.Fatalf("Failed to initialize algorithms: %v", err)
	}

	s, err := NewServer()
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.INFO)
	e.GET("/health", s.health)
	e.GET("/identity", s.identity)
	e.POST("/prove", s.prove)
	e.POST("/verify", s.verify)

	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()
	log.Infof("Server started on :%s", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Errorf("Failed to shutdown server gracefully: %v", err)
	}
	log.Info("Server stopped")
}
