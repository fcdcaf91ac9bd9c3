package main

import (
	"crypto/sha256"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort      = "8081"
	defaultAPIKey    = "pmdc-registry-secret-key"
	defaultLatencyMs = "50"
)

type LookupRequest struct {
	LicenseNumber string `json:"license_number"`
}

type LookupResponse struct {
	LicenseNumber string `json:"license_number"`
	DoctorName    string `json:"doctor_name,omitempty"`
	Registered    bool   `json:"registered"`
	CheckedAt     string `json:"checked_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var (
	apiKey    = getEnv("API_KEY", defaultAPIKey)
	latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)
)

// registeredDoctors holds predefined licenses that e2e tests rely on.
var registeredDoctors = map[string]string{
	"PMC-12345": "Dr. Ayesha Khan",
	"PMC-54321": "Dr. Bilal Ahmed",
	"D-98765":   "Dr. Sana Malik",
}

// notRegistered always returns a 404 regardless of hash.
var notRegistered = map[string]bool{
	"FAKE-000":   true,
	"PMC-00000":  true,
	"REVOKED-01": true,
}

// Magic licenses that force upstream failures.
const (
	outageLicense    = "OUTAGE-503"
	rateLimitLicense = "RATELIMIT-429"
	slowLicense      = "SLOW-TIMEOUT"
	malformedLicense = "MALFORMED-200"
)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/api/v1/licenses/lookup", handleLookup)

	log.Printf("Mock PMDC Registry API starting on port %s", port)
	log.Printf("Simulated latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "pmdc-registry",
		"version": "1.0.0",
	})
}

func handleLookup(w http.ResponseWriter, r *http.Request) {
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	log.Printf("Incoming request: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authHeader := r.Header.Get("X-API-Key")
	if authHeader == "" {
		sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
		return
	}
	if authHeader != apiKey {
		sendError(w, "Invalid API key", http.StatusUnauthorized)
		return
	}

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	license := strings.ToUpper(strings.TrimSpace(req.LicenseNumber))
	if license == "" {
		sendError(w, "license_number is required", http.StatusBadRequest)
		return
	}

	switch license {
	case outageLicense:
		sendError(w, "Registry temporarily unavailable", http.StatusServiceUnavailable)
		return
	case rateLimitLicense:
		w.Header().Set("Retry-After", "30")
		sendError(w, "Too many requests", http.StatusTooManyRequests)
		return
	case slowLicense:
		time.Sleep(10 * time.Second)
	case malformedLicense:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"license_number":"MALFORMED-200"}`))
		return
	}

	resp, ok := lookup(license)
	if !ok {
		log.Printf("Lookup: %s -> NOT REGISTERED", license)
		sendError(w, "License not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
	log.Printf("Lookup: %s -> %s", license, resp.DoctorName)
}

// lookup resolves predefined licenses first, then derives a deterministic
// answer from the license hash so arbitrary PMC-prefixed numbers are stable.
func lookup(license string) (LookupResponse, bool) {
	checkedAt := time.Now().UTC().Format(time.RFC3339)
	if name, ok := registeredDoctors[license]; ok {
		return LookupResponse{LicenseNumber: license, DoctorName: name, Registered: true, CheckedAt: checkedAt}, true
	}
	if notRegistered[license] || !strings.HasPrefix(license, "PMC-") {
		return LookupResponse{}, false
	}

	hash := sha256.Sum256([]byte(license))
	if hash[0]%5 == 0 {
		return LookupResponse{}, false
	}
	firstNames := []string{"Ahmed", "Fatima", "Usman", "Hina", "Imran", "Zainab", "Omar", "Mariam"}
	lastNames := []string{"Qureshi", "Siddiqui", "Chaudhry", "Raza", "Hussain", "Javed", "Iqbal", "Shah"}
	name := "Dr. " + firstNames[int(hash[1])%len(firstNames)] + " " + lastNames[int(hash[2])%len(lastNames)]
	return LookupResponse{LicenseNumber: license, DoctorName: name, Registered: true, CheckedAt: checkedAt}, true
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) int {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s value: %s, using default: %s", key, value, defaultValue)
		intValue, _ = strconv.Atoi(defaultValue)
	}
	return intValue
}
