package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"sales-agent/internal/app"
	"sales-agent/internal/httputil"
	"sales-agent/internal/llm"
	"sales-agent/internal/store"
	"sales-agent/internal/table"
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log, deps.Config.CORSOrigins)

	r.Post("/upload", uploadHandler(deps))
	r.Post("/ask", askHandler(deps))
	r.Get("/health", healthHandler(deps))
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}

		t, err := table.Parse(content)
		if err != nil {
			// parse failures are user-correctable; surface the exact message
			httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
			return
		}
		if err := t.Validate(); err != nil {
			httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
			return
		}

		if err := deps.Tables.Save(r.Context(), t); err != nil {
			httputil.Fail(deps.Log, w, "failed to persist file", err, http.StatusInternalServerError)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "file saved successfully",
			"columns": t.Columns,
		})
	}
}

type askRequest struct {
	Question string `validate:"required,min=1,max=2000"`
}

func askHandler(deps app.Deps) http.HandlerFunc {
	previewRows := deps.Config.PreviewRows

	return func(w http.ResponseWriter, r *http.Request) {
		req := askRequest{Question: strings.TrimSpace(r.FormValue("question"))}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.Fail(deps.Log, w, "question is required", err, http.StatusBadRequest)
			return
		}

		t, err := deps.Tables.Load(r.Context())
		if errors.Is(err, store.ErrNoTable) {
			httputil.Fail(deps.Log, w, "no file uploaded yet", err, http.StatusNotFound)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to process question", err, http.StatusInternalServerError)
			return
		}

		prompt := buildPrompt(t.Preview(previewRows), req.Question)
		answer, err := deps.LLM.Generate(r.Context(), prompt)
		if err != nil {
			// backend detail stays in the log
			httputil.Fail(deps.Log, w, "model backend error", err, http.StatusInternalServerError)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"question": req.Question,
			"answer":   answer,
		})
	}
}

// buildPrompt embeds the table preview and the literal question.
func buildPrompt(preview, question string) string {
	var b strings.Builder
	b.WriteString("Analyze this sales data:\n\n")
	b.WriteString(preview)
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\nAnswer with exact values when possible.\n")
	return b.String()
}

func healthHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"csv_loaded":      deps.Tables.Exists(),
			"ollama_running":  false,
			"model_available": false,
		}

		models, err := deps.LLM.ListModels(r.Context())
		switch {
		case err == nil:
			status["ollama_running"] = true
			status["model_available"] = modelAvailable(models, deps.Config.OllamaModel)
		case errors.Is(err, llm.ErrBadResponse):
			deps.Log.Warn("ollama returned malformed model listing", "err", err)
		default:
			deps.Log.Warn("ollama unreachable", "err", err)
		}

		httputil.WriteJSON(w, http.StatusOK, status)
	}
}

// modelAvailable matches the configured name bare or with any tag,
// since the backend lists names like "phi3:latest".
func modelAvailable(models []string, want string) bool {
	for _, m := range models {
		if m == want || strings.HasPrefix(m, want+":") {
			return true
		}
	}
	return false
}
