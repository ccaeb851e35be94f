package ideController

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"memarya/config"
	"memarya/middleware"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// Runtime is a language/version pair supported by the execution API
type Runtime struct {
	Language string   `json:"language"`
	Version  string   `json:"version"`
	Aliases  []string `json:"aliases,omitempty"`
}

var (
	runtimeCache    []Runtime
	runtimeCachedAt time.Time
	runtimeMu       sync.Mutex
)

// GetRuntimes lists the languages the execution API supports. The upstream
// list changes rarely, so it is cached for an hour.
func GetRuntimes(c *fiber.Ctx) error {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()

	if runtimeCache != nil && time.Since(runtimeCachedAt) < time.Hour {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Runtimes fetched successfully!", runtimeCache)
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().Get(config.AppConfig.PistonApiURL + "/runtimes")
	if err != nil {
		log.Printf("Failed to fetch runtimes: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Code execution service unavailable!", nil)
	}
	if resp.StatusCode() != fiber.StatusOK {
		log.Printf("Runtime API error: %s", resp.String())
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Code execution service unavailable!", nil)
	}

	var runtimes []Runtime
	if err := json.Unmarshal(resp.Body(), &runtimes); err != nil {
		log.Printf("Failed to parse runtimes response: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Invalid response from code execution service!", nil)
	}

	runtimeCache = runtimes
	runtimeCachedAt = time.Now()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Runtimes fetched successfully!", runtimes)
}

// ExecuteCode forwards a code snippet to the execution API and relays the
// result. All sandboxing and resource limits live upstream.
func ExecuteCode(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedExecution").(*struct {
		Language string `json:"language"`
		Version  string `json:"version"`
		Code     string `json:"code"`
		Stdin    string `json:"stdin"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	payload := map[string]interface{}{
		"language": reqData.Language,
		"version":  reqData.Version,
		"files": []map[string]string{
			{"content": reqData.Code},
		},
		"stdin": reqData.Stdin,
	}

	client := resty.New().SetTimeout(30 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(config.AppConfig.PistonApiURL + "/execute")
	if err != nil {
		log.Printf("Code execution failed for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Code execution service unavailable!", nil)
	}
	if resp.StatusCode() != fiber.StatusOK {
		log.Printf("Execution API error: %s", resp.String())
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Code execution rejected!", nil)
	}

	var execResp struct {
		Run struct {
			Stdout string `json:"stdout"`
			Stderr string `json:"stderr"`
			Output string `json:"output"`
			Code   int    `json:"code"`
		} `json:"run"`
		Language string `json:"language"`
		Version  string `json:"version"`
	}
	if err := json.Unmarshal(resp.Body(), &execResp); err != nil {
		log.Printf("Failed to parse execution response: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Invalid response from code execution service!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Code executed successfully!", fiber.Map{
		"language":  execResp.Language,
		"version":   execResp.Version,
		"stdout":    execResp.Run.Stdout,
		"stderr":    execResp.Run.Stderr,
		"output":    execResp.Run.Output,
		"exit_code": execResp.Run.Code,
	})
}
