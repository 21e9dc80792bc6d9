package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"

	"github.com/coinbase/smart-wallet/dumpkey/keys"
	"github.com/coinbase/smart-wallet/dumpkey/utils"
)

// FingerprintRequest represents the request body for the /fingerprint endpoint
type FingerprintRequest struct {
	Pem string `json:"pem"`
}

// FingerprintResponse represents the response body for the /fingerprint endpoint
type FingerprintResponse struct {
	Fingerprint *hexutil.Big `json:"fingerprint"`
	Bits        int          `json:"bits"`
}

// HandleFingerprintRequest handles the /fingerprint endpoint. The key is not
// checked against the policy.
func HandleFingerprintRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req FingerprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	key, err := keys.Parse([]byte(req.Pem))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fingerprint, err := utils.ModulusFingerprint(key.N)
	if err != nil {
		log.Error("Error computing fingerprint", "err", err)
		http.Error(w, "Failed to compute fingerprint", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FingerprintResponse{
		Fingerprint: (*hexutil.Big)(fingerprint),
		Bits:        key.N.BitLen(),
	})
}
