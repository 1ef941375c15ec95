package requests

type AddDoctor struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Speciality string `json:"speciality" validate:"required,max=100"`
	Fees       int64  `json:"fees" validate:"gt=0"`
}

type ChangeAvailability struct {
	DoctorID string `json:"docId" validate:"required,hexadecimal,len=24"`
}
