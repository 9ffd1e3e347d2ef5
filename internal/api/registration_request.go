package api

// RegistrationRequest 建立與更新登記共用的 body，id 與 createdAt 一律忽略
// persons 可能是數字或字串，交給 service.ValidateRegistration 判斷
// swagger:model api.RegistrationRequest
type RegistrationRequest struct {
	FullName    string `json:"fullName" example:"Ada"`
	Sex         string `json:"sex" example:"female" enums:"female,male,nonbinary,prefer-not"`
	Phone       string `json:"phone" example:"+234-801-234-5678"`
	Email       string `json:"email" example:"a@example.com"`
	Destination string `json:"destination" example:"Kenya"`
	City        string `json:"city" example:"Nairobi"`
	Persons     any    `json:"persons" swaggertype:"integer" example:"2"`
	TravelTime  string `json:"travelTime" example:"2024-05-01T10:00"`
	Message     string `json:"message" example:"Window seat please"`
}
