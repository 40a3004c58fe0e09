package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Thaihung204/CreditNoVa/internal/domain/survey"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SurveyService interface {
	List(ctx context.Context) ([]survey.Entity, error)
	GetByID(ctx context.Context, id string) (*survey.Entity, error)
	Create(ctx context.Context, in survey.CreateInput) (*survey.Entity, error)
	ReplaceSalarySlip(ctx context.Context, id string, image []byte) (*survey.Entity, error)
	ReplaceUtilityBill(ctx context.Context, id string, image []byte) (*survey.Entity, error)
	Update(ctx context.Context, id string, p survey.Patch) (*survey.Entity, error)
	UpdateScore(ctx context.Context, id string, score int32) (*survey.Entity, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type SurveyHandler struct {
	surveyService SurveyService
}

func NewSurveyHandler(surveyService SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	items, err := h.surveyService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_surveys_failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	id, ok := surveyID(c)
	if !ok {
		return
	}
	item, err := h.surveyService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondSurveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateSurvey handles the guest intake submission: a multipart form
// carrying every applicant field plus the two optional document files.
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	in, fieldErr := parseIntakeForm(c)
	if fieldErr != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_field", "field": fieldErr})
		return
	}

	created, err := h.surveyService.Create(c.Request.Context(), *in)
	if err != nil {
		if errors.Is(err, survey.ErrScoringFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "scoring_failed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create_survey_failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateSurvey keeps the historical contract of PUT /survey/:id: only
// the salary-slip attachment is replaced, every other submitted field
// is ignored. General edits go through PatchSurvey.
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	id, ok := surveyID(c)
	if !ok {
		return
	}

	image, err := readFormFile(c, "SalarySlipImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_salary_slip_image"})
		return
	}

	updated, err := h.surveyService.ReplaceSalarySlip(c.Request.Context(), id, image)
	if err != nil {
		respondSurveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *SurveyHandler) PatchSurvey(c *gin.Context) {
	id, ok := surveyID(c)
	if !ok {
		return
	}

	var patch survey.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	updated, err := h.surveyService.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondSurveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *SurveyHandler) UpdateScore(c *gin.Context) {
	id, ok := surveyID(c)
	if !ok {
		return
	}

	var req struct {
		CreditScore int32 `json:"creditScore"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	updated, err := h.surveyService.UpdateScore(c.Request.Context(), id, req.CreditScore)
	if err != nil {
		respondSurveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	id, ok := surveyID(c)
	if !ok {
		return
	}
	deleted, err := h.surveyService.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete_survey_failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey_not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadSalarySlip is the second step of the two-step intake flow the
// guest form uses: the record exists, the file arrives afterwards
// under the form key "file".
func (h *SurveyHandler) UploadSalarySlip(c *gin.Context) {
	h.uploadAttachment(c, h.surveyService.ReplaceSalarySlip)
}

func (h *SurveyHandler) UploadUtilityBill(c *gin.Context) {
	h.uploadAttachment(c, h.surveyService.ReplaceUtilityBill)
}

func (h *SurveyHandler) uploadAttachment(c *gin.Context, replace func(context.Context, string, []byte) (*survey.Entity, error)) {
	id, ok := surveyID(c)
	if !ok {
		return
	}
	image, err := readFormFile(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_file"})
		return
	}
	updated, err := replace(c.Request.Context(), id, image)
	if err != nil {
		respondSurveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *SurveyHandler) GetSalarySlip(c *gin.Context) {
	h.serveAttachment(c, func(e *survey.Entity) []byte { return e.SalarySlipImage })
}

func (h *SurveyHandler) GetUtilityBill(c *gin.Context) {
	h.serveAttachment(c, func(e *survey.Entity) []byte { return e.UtilityBillImage })
}

func (h *SurveyHandler) serveAttachment(c *gin.Context, pick func(*survey.Entity) []byte) {
	id, ok := surveyID(c)
	if !ok {
		return
	}
	item, err := h.surveyService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondSurveyError(c, err)
		return
	}
	data := pick(item)
	if len(data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "attachment_not_found"})
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

func surveyID(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_survey_id"})
		return "", false
	}
	return id.String(), true
}

func respondSurveyError(c *gin.Context, err error) {
	if errors.Is(err, survey.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey_not_found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage_failure"})
}

func parseIntakeForm(c *gin.Context) (*survey.CreateInput, string) {
	fullName := strings.TrimSpace(c.PostForm("FullName"))
	if fullName == "" {
		return nil, "FullName"
	}

	dateOfBirth, err := parseFormDate(c.PostForm("DateOfBirth"))
	if err != nil {
		return nil, "DateOfBirth"
	}

	dependents, err := parseFormInt32(c.PostForm("NumberOfDependents"))
	if err != nil || dependents < 0 {
		return nil, "NumberOfDependents"
	}
	yearsAtJob, err := parseFormInt32(c.PostForm("YearsAtCurrentJob"))
	if err != nil || yearsAtJob < 0 {
		return nil, "YearsAtCurrentJob"
	}
	monthlyIncome, err := parseFormAmount(c.PostForm("MonthlyIncome"))
	if err != nil || monthlyIncome < 0 {
		return nil, "MonthlyIncome"
	}
	lifeInsurance, err := parseFormAmount(c.PostForm("LifeInsuranceValue"))
	if err != nil {
		return nil, "LifeInsuranceValue"
	}
	loanLimit, err := parseFormAmount(c.PostForm("LoanLimit"))
	if err != nil {
		return nil, "LoanLimit"
	}
	outstandingDebt, err := parseFormAmount(c.PostForm("CurrentOutstandingDebt"))
	if err != nil {
		return nil, "CurrentOutstandingDebt"
	}

	salarySlip, err := readOptionalFormFile(c, "SalarySlipImage")
	if err != nil {
		return nil, "SalarySlipImage"
	}
	utilityBill, err := readOptionalFormFile(c, "UtilityBillImage")
	if err != nil {
		return nil, "UtilityBillImage"
	}

	return &survey.CreateInput{
		FullName:           fullName,
		DateOfBirth:        dateOfBirth,
		Gender:             c.PostForm("Gender"),
		IdentityNumber:     c.PostForm("IdentityNumber"),
		MaritalStatus:      c.PostForm("MaritalStatus"),
		NumberOfDependents: dependents,
		EducationLevel:     c.PostForm("EducationLevel"),
		Address:            c.PostForm("Address"),

		Occupation:          c.PostForm("Occupation"),
		CompanyName:         c.PostForm("CompanyName"),
		CompanyType:         c.PostForm("CompanyType"),
		YearsAtCurrentJob:   yearsAtJob,
		MonthlyIncome:       monthlyIncome,
		SalaryPaymentMethod: c.PostForm("SalaryPaymentMethod"),

		SalarySlipImage:  salarySlip,
		UtilityBillImage: utilityBill,

		OwnHouseOrLand:          parseFormBool(c.PostForm("OwnHouseOrLand")),
		OwnCarOrValuableVehicle: parseFormBool(c.PostForm("OwnCarOrValuableVehicle")),
		HasSavingsAccount:       parseFormBool(c.PostForm("HasSavingsAccount")),
		LifeInsuranceValue:      lifeInsurance,
		Investments:             c.PostForm("Investments"),

		HadPreviousLoans:       parseFormBool(c.PostForm("HadPreviousLoans")),
		LoanInstitution:        c.PostForm("LoanInstitution"),
		LoanLimit:              loanLimit,
		CurrentOutstandingDebt: outstandingDebt,
		LoanTerm:               c.PostForm("LoanTerm"),

		PhoneNumber: c.PostForm("PhoneNumber"),
		Email:       c.PostForm("Email"),
		Facebook:    c.PostForm("Facebook"),
	}, ""
}

func readFormFile(c *gin.Context, key string) ([]byte, error) {
	header, err := c.FormFile(key)
	if err != nil {
		return nil, err
	}
	return readMultipartFile(header)
}

// readOptionalFormFile distinguishes "field absent" (fine, nil bytes)
// from "field present but unreadable" (a client error).
func readOptionalFormFile(c *gin.Context, key string) ([]byte, error) {
	header, err := c.FormFile(key)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return readMultipartFile(header)
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

func parseFormDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func parseFormInt32(raw string) (int32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// parseFormAmount accepts the formatted currency strings the guest
// form produces ("25,000,000") as well as bare integers.
func parseFormAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(raw)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

func parseFormBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
