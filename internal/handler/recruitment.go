package handler

import (
	"net/http"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/service"
)

// RecruitmentHandler serves the public application form.
type RecruitmentHandler struct {
	recruitment *service.RecruitmentService
}

// NewRecruitmentHandler creates a RecruitmentHandler.
func NewRecruitmentHandler(recruitment *service.RecruitmentService) *RecruitmentHandler {
	return &RecruitmentHandler{recruitment: recruitment}
}

type applicationRequest struct {
	CharacterName  string `json:"character_name"`
	Realm          string `json:"realm"`
	Class          string `json:"class"`
	Spec           string `json:"spec"`
	ItemLevel      int    `json:"item_level"`
	BattleTag      string `json:"battle_tag"`
	AboutText      string `json:"about_text"`
	RaidExperience string `json:"raid_experience"`
	Availability   string `json:"availability"`
}

// Submit accepts a recruitment application.
func (h *RecruitmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	created, err := h.recruitment.Submit(r.Context(), &domain.Application{
		CharacterName:  req.CharacterName,
		Realm:          req.Realm,
		Class:          req.Class,
		Spec:           req.Spec,
		ItemLevel:      req.ItemLevel,
		BattleTag:      req.BattleTag,
		AboutText:      req.AboutText,
		RaidExperience: req.RaidExperience,
		Availability:   req.Availability,
	})
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, created)
}
