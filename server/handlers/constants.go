package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"

	"github.com/coinbase/smart-wallet/dumpkey/dump"
	"github.com/coinbase/smart-wallet/dumpkey/keys"
	"github.com/coinbase/smart-wallet/dumpkey/policy"
	"github.com/coinbase/smart-wallet/dumpkey/utils"
	"github.com/coinbase/smart-wallet/dumpkey/words"
)

// ConstantsRequest represents the request body for the /constants endpoint
type ConstantsRequest struct {
	Pem    string `json:"pem"`
	Layout string `json:"layout"`
}

// ConstantsResponse represents the response body for the /constants endpoint
type ConstantsResponse struct {
	N0Inv       hexutil.Uint64 `json:"n0inv"`
	N           *hexutil.Big   `json:"n"`
	RR          *hexutil.Big   `json:"rr"`
	Layout      string         `json:"layout"`
	Text        string         `json:"text"`
	Fingerprint *hexutil.Big   `json:"fingerprint"`
}

// HandleConstantsRequest handles the /constants endpoint
func HandleConstantsRequest(w http.ResponseWriter, r *http.Request) {
	// Only allow POST method
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ConstantsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	layout, err := words.ParseLayout(req.Layout)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := dump.Build(dump.PEMBytes(req.Pem), dump.WithLayout(layout))
	if err != nil {
		log.Warn("Error rendering constants", "err", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	fingerprint, err := utils.ModulusFingerprint(res.Key.N)
	if err != nil {
		log.Error("Error computing fingerprint", "err", err)
		http.Error(w, "Failed to compute fingerprint", http.StatusInternalServerError)
		return
	}

	response := ConstantsResponse{
		N0Inv:       hexutil.Uint64(res.Constants.N0Inv),
		N:           (*hexutil.Big)(res.Key.N),
		RR:          (*hexutil.Big)(res.Constants.RR),
		Layout:      layout.String(),
		Text:        res.Text,
		Fingerprint: (*hexutil.Big)(fingerprint),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// statusFor maps pipeline errors to HTTP status codes. Bad input is the
// caller's fault; anything else is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, keys.ErrUnparseable), errors.Is(err, policy.ErrPolicy):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
