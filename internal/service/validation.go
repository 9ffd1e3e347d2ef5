package service

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/api"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"

	"github.com/go-playground/validator/v10"
)

// 驗證失敗訊息，順序即檢查順序，前端直接顯示
const (
	MsgFullName    = "Full name must be at least 2 characters."
	MsgSex         = "Sex is required."
	MsgPhone       = "Phone must match +234-801-234-5678 format."
	MsgEmail       = "Valid email is required."
	MsgDestination = "Destination is required."
	MsgCity        = "City must be at least 2 characters."
	MsgPersons     = "Persons must be between 1 and 20."
	MsgTravelTime  = "Travel time is required."
)

var phonePattern = regexp.MustCompile(`^\+\d{1,3}-\d{3}-\d{3}-\d{4}$`)

// ValidationError 表示輸入不合法，Message 可直接回給用戶端
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidator 回傳註冊了 phone 規則的 validator，echo 的 CustomValidator 也共用它
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

var validate = NewValidator()

type fieldRule struct {
	value   any
	tag     string
	message string
}

// ValidateRegistration 依固定順序檢查，遇到第一個失敗即回傳 *ValidationError。
// 成功時回傳可寫入資料庫的 Registration (ID 與 CreatedAt 為零值)。
func ValidateRegistration(req api.RegistrationRequest) (model.Registration, error) {
	persons, personsOK := parsePersons(req.Persons)

	rules := []fieldRule{
		{strings.TrimSpace(req.FullName), "required,min=2", MsgFullName},
		{strings.TrimSpace(req.Sex), "required", MsgSex},
		{req.Phone, "required,phone", MsgPhone},
		{strings.TrimSpace(req.Email), "required,contains=@", MsgEmail},
		{strings.TrimSpace(req.Destination), "required", MsgDestination},
		{strings.TrimSpace(req.City), "required,min=2", MsgCity},
		{persons, "min=1,max=20", MsgPersons},
		{strings.TrimSpace(req.TravelTime), "required", MsgTravelTime},
	}
	for _, r := range rules {
		if r.message == MsgPersons && !personsOK {
			return model.Registration{}, &ValidationError{Message: r.message}
		}
		if err := validate.Var(r.value, r.tag); err != nil {
			return model.Registration{}, &ValidationError{Message: r.message}
		}
	}

	return model.Registration{
		FullName:    req.FullName,
		Sex:         req.Sex,
		Phone:       req.Phone,
		Email:       req.Email,
		Destination: req.Destination,
		City:        req.City,
		Persons:     persons,
		TravelTime:  req.TravelTime,
		Message:     req.Message,
	}, nil
}

// parsePersons 接受整數值的 JSON number 或數字字串，其餘一律拒絕
func parsePersons(v any) (int, bool) {
	switch p := v.(type) {
	case float64:
		if p != math.Trunc(p) || p < math.MinInt32 || p > math.MaxInt32 {
			return 0, false
		}
		return int(p), true
	case int:
		return p, true
	case json.Number:
		n, err := strconv.Atoi(p.String())
		return n, err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(p))
		return n, err == nil
	default:
		return 0, false
	}
}
