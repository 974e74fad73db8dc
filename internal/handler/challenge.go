package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/AICore_Go/internal/challenge"
	"github.com/osse101/AICore_Go/internal/domain"
)

// ChallengeHandler serves the challenge catalog and participation routes
type ChallengeHandler struct {
	service challenge.Service
}

func NewChallengeHandler(service challenge.Service) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// CreateChallengeRequest is the body of POST /challenges
type CreateChallengeRequest struct {
	Title              string                  `json:"title" validate:"required,max=200"`
	Description        string                  `json:"description" validate:"max=2000"`
	VerificationType   domain.VerificationType `json:"verification_type" validate:"omitempty,oneof=manual automatic progress"`
	VerificationKey    *string                 `json:"verification_key,omitempty" validate:"omitempty,max=100"`
	VerificationParams json.RawMessage         `json:"verification_params,omitempty" validate:"json" swaggertype:"object"`
	RewardCore         string                  `json:"reward_core" validate:"max=50,reward_core"`
	RewardItems        []domain.RewardItem     `json:"reward_items" validate:"omitempty,max=50,dive"`
	MaxParticipants    int                     `json:"max_participants" validate:"min=0"`
	Priority           int                     `json:"priority"`
}

func (req CreateChallengeRequest) toDefinition() domain.ChallengeDefinition {
	return domain.ChallengeDefinition{
		Title:              req.Title,
		Description:        req.Description,
		VerificationType:   req.VerificationType,
		VerificationKey:    req.VerificationKey,
		VerificationParams: req.VerificationParams,
		RewardCore:         req.RewardCore,
		RewardItems:        req.RewardItems,
		MaxParticipants:    req.MaxParticipants,
		Priority:           req.Priority,
	}
}

// UpdateParticipationRequest is the body of POST /challenges/{id}/participation
type UpdateParticipationRequest struct {
	Status       string          `json:"status" validate:"required,oneof=active completed"`
	ProgressData json.RawMessage `json:"progress_data,omitempty" validate:"json" swaggertype:"object"`
}

// HandleListChallenges lists the catalog
// @Summary List challenges
// @Description Active challenges, highest priority then newest first. all=true includes inactive ones and requires an administrator.
// @Tags challenges
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param all query bool false "Include inactive challenges"
// @Success 200 {object} Envelope{data=[]domain.Challenge}
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /challenges [get]
func (h *ChallengeHandler) HandleListChallenges(w http.ResponseWriter, r *http.Request) {
	if _, ok := RequireUserID(w, r); !ok {
		return
	}

	list := h.service.List
	if GetOptionalQueryParam(r, "all", "false") == "true" {
		if !IsAdmin(r.Context()) {
			respondError(w, http.StatusForbidden, ErrMsgAdminRequired)
			return
		}
		list = h.service.ListAll
	}

	challenges, err := list(r.Context())
	if err != nil {
		respondServiceError(w, r, "List challenges", err)
		return
	}
	respondData(w, http.StatusOK, challenges)
}

// HandleCreateChallenge creates a user-owned challenge
// @Summary Create challenge
// @Tags challenges
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param request body CreateChallengeRequest true "Challenge definition"
// @Success 201 {object} Envelope{data=domain.Challenge}
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /challenges [post]
func (h *ChallengeHandler) HandleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	var req CreateChallengeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create challenge"); err != nil {
		return
	}

	c, err := h.service.Create(r.Context(), req.toDefinition(), userID)
	if err != nil {
		respondServiceError(w, r, "Create challenge", err)
		return
	}
	respondData(w, http.StatusCreated, c)
}

// HandleDeleteChallenge deletes a challenge and its participations
// @Summary Delete challenge
// @Description Owners may delete their challenges; system challenges may be deleted by any caller.
// @Tags challenges
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Challenge ID"
// @Success 200 {object} Envelope{data=MessageData}
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /challenges/{id} [delete]
func (h *ChallengeHandler) HandleDeleteChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}
	challengeID, ok := challengeIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), challengeID, userID); err != nil {
		respondServiceError(w, r, "Delete challenge", err)
		return
	}
	respondData(w, http.StatusOK, MessageData{Message: MsgChallengeDeleted})
}

// HandleJoinChallenge joins the caller to a challenge
// @Summary Join challenge
// @Tags participation
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Challenge ID"
// @Success 201 {object} Envelope{data=domain.Participant}
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 409 {object} Envelope "Already joined or full"
// @Router /challenges/{id}/join [post]
func (h *ChallengeHandler) HandleJoinChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}
	challengeID, ok := challengeIDParam(w, r)
	if !ok {
		return
	}

	p, err := h.service.Join(r.Context(), challengeID, userID)
	if err != nil {
		respondServiceError(w, r, "Join challenge", err)
		return
	}
	respondData(w, http.StatusCreated, p)
}

// HandleUpdateParticipation records progress or completes the caller's participation
// @Summary Update participation
// @Description status=active replaces progress; status=completed runs verification and settles the reward once.
// @Tags participation
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Challenge ID"
// @Param request body UpdateParticipationRequest true "Target status and progress"
// @Success 200 {object} Envelope{data=domain.Participant}
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} Envelope
// @Failure 409 {object} Envelope
// @Failure 422 {object} Envelope "Verification failed"
// @Router /challenges/{id}/participation [post]
func (h *ChallengeHandler) HandleUpdateParticipation(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}
	challengeID, ok := challengeIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateParticipationRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update participation"); err != nil {
		return
	}

	p, err := h.service.RequestStatusChange(r.Context(), challengeID, userID, domain.ParticipantStatus(req.Status), req.ProgressData)
	if err != nil {
		respondServiceError(w, r, "Update participation", err)
		return
	}
	respondData(w, http.StatusOK, p)
}

// HandleGetParticipation returns the caller's participation in one challenge
// @Summary Get participation
// @Tags participation
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Challenge ID"
// @Success 200 {object} Envelope{data=domain.Participant}
// @Failure 404 {object} Envelope
// @Router /challenges/{id}/participation [get]
func (h *ChallengeHandler) HandleGetParticipation(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}
	challengeID, ok := challengeIDParam(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetParticipation(r.Context(), challengeID, userID)
	if err != nil {
		respondServiceError(w, r, "Get participation", err)
		return
	}
	respondData(w, http.StatusOK, p)
}

// HandleListParticipations lists every participation of the caller
// @Summary List my participations
// @Tags participation
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Success 200 {object} Envelope{data=[]domain.Participant}
// @Router /participations [get]
func (h *ChallengeHandler) HandleListParticipations(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	rows, err := h.service.ListUserParticipations(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List participations", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

// HandleReconcileSettlements settles completed participations missing their reward
// @Summary Reconcile unsettled rewards
// @Tags admin
// @Produce json
// @Param X-Admin-Key header string true "Administrator key"
// @Param limit query int false "Maximum rows to process"
// @Success 200 {object} Envelope{data=challenge.ReconcileResult}
// @Failure 403 {object} Envelope
// @Router /admin/settlements/reconcile [post]
func (h *ChallengeHandler) HandleReconcileSettlements(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetOptionalIntQueryParam(w, r, "limit", challenge.DefaultReconcileLimit)
	if !ok {
		return
	}

	res, err := h.service.ReconcileUnsettled(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Reconcile settlements", err)
		return
	}
	respondData(w, http.StatusOK, res)
}

func challengeIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMissingChallengeID)
		return "", false
	}
	return id, true
}
