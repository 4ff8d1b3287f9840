package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lwmacct/251215-go-pkg-envexp/internal/config"
	"github.com/lwmacct/251215-go-pkg-envexp/pkg/envexp"
)

// entry 请求与响应中的单个配置项，数组形式以保留顺序。
type entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// expandRequest POST /expand 请求体。
//
// 展开只使用 Env 作为环境上下文，不会读取服务进程的环境变量。
//
//nolint:tagliatelle
type expandRequest struct {
	Entries  []entry           `json:"entries"`
	Env      map[string]string `json:"env"`
	Legacy   bool              `json:"legacy"`
	MaxSteps int               `json:"max_steps"`
}

// expandResponse POST /expand 响应体，Env 为合并后的环境上下文。
type expandResponse struct {
	Entries []entry           `json:"entries"`
	Env     map[string]string `json:"env"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// newHandler 创建路由：GET /health、POST /expand。
func newHandler(cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /expand", func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody(cfg))

		var req expandRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			writeJSON(w, status, errorResponse{Error: fmt.Sprintf("decode request: %v", err)})

			return
		}

		set := envexp.NewSet()
		for _, e := range req.Entries {
			set.Put(e.Key, e.Value)
		}
		env := envexp.MapEnv{}
		for k, v := range req.Env {
			env[k] = v
		}

		out, err := envexp.Expand(set, env, requestOptions(cfg, req)...)
		if err != nil {
			slog.Warn("Expand request failed", "error", err, "entries", set.Len())
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})

			return
		}

		resp := expandResponse{Entries: make([]entry, 0, out.Len()), Env: env}
		for key, value := range out.All() {
			resp.Entries = append(resp.Entries, entry{Key: key, Value: value})
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return mux
}

// maxBody 返回请求体上限，未配置或 <= 0 时使用默认值。
func maxBody(cfg *config.Config) int64 {
	if cfg.Server.MaxBody > 0 {
		return cfg.Server.MaxBody
	}

	return config.DefaultConfig().Server.MaxBody
}

// requestOptions 合并服务端配置与请求参数，max_steps 不超过服务端上限。
func requestOptions(cfg *config.Config, req expandRequest) []envexp.Option {
	steps := cfg.Expand.MaxSteps
	if steps <= 0 {
		steps = envexp.DefaultMaxSteps
	}
	if req.MaxSteps > 0 && req.MaxSteps < steps {
		steps = req.MaxSteps
	}

	opts := []envexp.Option{envexp.WithMaxSteps(steps)}
	if req.Legacy || cfg.Expand.Legacy {
		opts = append(opts, envexp.WithLegacyFallback())
	}

	return opts
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Write response failed", "error", err)
	}
}
