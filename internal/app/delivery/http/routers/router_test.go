package routers

import (
	"bytes"
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	testAPIKey        = "test-admin-api-key-12345"
	patientToken      = "patient-token"
	doctorToken       = "doctor-token"
	testUserID        = "65f1a2b3c4d5e6f708091a01"
	testDoctorID      = "65f1a2b3c4d5e6f708091a02"
	testAppointmentID = "65f1a2b3c4d5e6f708091a03"
)

type routerFixture struct {
	router       *chi.Mux
	patients     *MockTokenManager
	doctors      *MockTokenManager
	users        *MockUserUsecase
	doctorCases  *MockDoctorUsecase
	appointments *MockAppointmentUsecase
	payments     *MockPaymentUsecase
}

func newRouterFixture() *routerFixture {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix: "api",
			Version:        "v1",
			AdminAPIKey:    testAPIKey,
			MaxRequests:    1000,
		},
	}

	f := &routerFixture{
		router:       chi.NewRouter(),
		patients:     new(MockTokenManager),
		doctors:      new(MockTokenManager),
		users:        new(MockUserUsecase),
		doctorCases:  new(MockDoctorUsecase),
		appointments: new(MockAppointmentUsecase),
		payments:     new(MockPaymentUsecase),
	}

	f.patients.On("Verify", mock.Anything, patientToken).Return(testUserID, nil)
	f.patients.On("Verify", mock.Anything, mock.Anything).Return("", exceptions.ErrTokenInvalidOrExpired(errors.New("token audience mismatch")))
	f.doctors.On("Verify", mock.Anything, doctorToken).Return(testDoctorID, nil)
	f.doctors.On("Verify", mock.Anything, mock.Anything).Return("", exceptions.ErrTokenInvalidOrExpired(errors.New("token audience mismatch")))

	mw := middlewares.NewMiddlewares(logger, internalConfig, f.patients, f.doctors, nil)
	SetupRoutes(
		f.router,
		internalConfig,
		mw,
		controllers.NewUserController(logger, internalConfig, f.users),
		controllers.NewDoctorController(logger, internalConfig, f.doctorCases),
		controllers.NewAppointmentController(logger, internalConfig, f.appointments),
		controllers.NewPaymentController(logger, internalConfig, f.payments),
		controllers.NewAdminController(logger, internalConfig, f.doctorCases),
	)
	return f
}

func (f *routerFixture) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestUserRoutes(t *testing.T) {
	t.Run("Register Returns Token", func(t *testing.T) {
		f := newRouterFixture()
		f.users.On("Register", mock.Anything, &requests.RegisterUser{
			Name:     "Patient One",
			Email:    "p1@example.com",
			Password: "password123",
		}).Return(&responses.Login{Token: "jwt"}, nil)

		rr := f.do("POST", "/api/v1/users/register", `{"name":"Patient One","email":"p1@example.com","password":"password123"}`, nil)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.True(t, gjson.Get(rr.Body.String(), "success").Bool())
		assert.Equal(t, "jwt", gjson.Get(rr.Body.String(), "data.token").String())
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Register Rejects Short Password", func(t *testing.T) {
		f := newRouterFixture()

		rr := f.do("POST", "/api/v1/users/register", `{"name":"Patient One","email":"p1@example.com","password":"short"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, constvars.ErrCodeValidationError, gjson.Get(rr.Body.String(), "error_code").String())
		f.users.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Login With Wrong Password", func(t *testing.T) {
		f := newRouterFixture()
		f.users.On("Login", mock.Anything, mock.Anything).Return(nil, exceptions.ErrInvalidEmailOrPassword(nil))

		rr := f.do("POST", "/api/v1/users/login", `{"email":"p1@example.com","password":"nope"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, constvars.ErrCodeInvalidCredentials, gjson.Get(rr.Body.String(), "error_code").String())
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		f := newRouterFixture()

		rr := f.do("POST", "/api/v1/users/login", `{"email":`, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAppointmentRoutes(t *testing.T) {
	bookBody := `{"docId":"` + testDoctorID + `","slotDate":"1_1_2024","slotTime":"10:00 AM"}`

	t.Run("Book Requires Patient Token", func(t *testing.T) {
		f := newRouterFixture()

		rr := f.do("POST", "/api/v1/users/appointments/book", bookBody, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		f.appointments.AssertNotCalled(t, "BookSlot", mock.Anything, mock.Anything)
	})

	t.Run("Doctor Token Is Not A Patient Token", func(t *testing.T) {
		f := newRouterFixture()

		rr := f.do("POST", "/api/v1/users/appointments/book", bookBody, map[string]string{
			constvars.HeaderPatientToken: doctorToken,
		})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Book Passes Authenticated User", func(t *testing.T) {
		f := newRouterFixture()
		f.appointments.On("BookSlot", mock.Anything, &requests.BookAppointment{
			DoctorID: testDoctorID,
			SlotDate: "1_1_2024",
			SlotTime: "10:00 AM",
			UserID:   testUserID,
		}).Return(&responses.BookAppointment{AppointmentID: testAppointmentID, DoctorID: testDoctorID, Amount: 100}, nil)

		rr := f.do("POST", "/api/v1/users/appointments/book", bookBody, map[string]string{
			constvars.HeaderPatientToken: patientToken,
		})

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, testAppointmentID, gjson.Get(rr.Body.String(), "data.appointmentId").String())
		f.appointments.AssertExpectations(t)
	})

	t.Run("Book Ignores UserID In Body", func(t *testing.T) {
		f := newRouterFixture()
		f.appointments.On("BookSlot", mock.Anything, mock.MatchedBy(func(r *requests.BookAppointment) bool {
			return r.UserID == testUserID
		})).Return(&responses.BookAppointment{}, nil)

		body := `{"userId":"someone-else","docId":"` + testDoctorID + `","slotDate":"1_1_2024","slotTime":"10:00 AM"}`
		rr := f.do("POST", "/api/v1/users/appointments/book", body, map[string]string{
			constvars.HeaderPatientToken: patientToken,
		})

		assert.Equal(t, http.StatusCreated, rr.Code)
		f.appointments.AssertExpectations(t)
	})

	t.Run("Book Rejects Field Path Date", func(t *testing.T) {
		f := newRouterFixture()

		body := `{"docId":"` + testDoctorID + `","slotDate":"1.1.2024","slotTime":"10:00 AM"}`
		rr := f.do("POST", "/api/v1/users/appointments/book", body, map[string]string{
			constvars.HeaderPatientToken: patientToken,
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		f.appointments.AssertNotCalled(t, "BookSlot", mock.Anything, mock.Anything)
	})

	t.Run("Book Conflict Maps To 409", func(t *testing.T) {
		f := newRouterFixture()
		f.appointments.On("BookSlot", mock.Anything, mock.Anything).Return(nil, exceptions.ErrSlotUnavailable(nil))

		rr := f.do("POST", "/api/v1/users/appointments/book", bookBody, map[string]string{
			constvars.HeaderPatientToken: patientToken,
		})

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, constvars.ErrCodeSlotUnavailable, gjson.Get(rr.Body.String(), "error_code").String())
		assert.False(t, gjson.Get(rr.Body.String(), "success").Bool())
	})

	t.Run("Cancel By Non Owner Is Forbidden", func(t *testing.T) {
		f := newRouterFixture()
		f.appointments.On("CancelSlot", mock.Anything, &requests.CancelAppointment{
			AppointmentID: testAppointmentID,
			UserID:        testUserID,
		}).Return(exceptions.ErrAppointmentNotOwned(nil))

		rr := f.do("POST", "/api/v1/users/appointments/cancel", `{"appointmentId":"`+testAppointmentID+`"}`, map[string]string{
			constvars.HeaderPatientToken: patientToken,
		})

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("List User Appointments", func(t *testing.T) {
		f := newRouterFixture()
		f.appointments.On("ListUserAppointments", mock.Anything, testUserID).
			Return([]responses.Appointment{{ID: testAppointmentID}}, nil)

		rr := f.do("GET", "/api/v1/users/appointments", "", map[string]string{
			constvars.HeaderPatientToken: patientToken,
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, testAppointmentID, gjson.Get(rr.Body.String(), "data.0._id").String())
	})

	t.Run("Doctor Completes Appointment", func(t *testing.T) {
		f := newRouterFixture()
		f.appointments.On("CompleteAppointment", mock.Anything, &requests.DoctorAppointmentAction{
			AppointmentID: testAppointmentID,
			DoctorID:      testDoctorID,
		}).Return(nil)

		rr := f.do("POST", "/api/v1/doctors/appointments/complete", `{"appointmentId":"`+testAppointmentID+`"}`, map[string]string{
			constvars.HeaderDoctorToken: doctorToken,
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		f.appointments.AssertExpectations(t)
	})

	t.Run("Doctor Cancel Reads dtoken Header", func(t *testing.T) {
		f := newRouterFixture()

		rr := f.do("POST", "/api/v1/doctors/appointments/cancel", `{"appointmentId":"`+testAppointmentID+`"}`, map[string]string{
			constvars.HeaderPatientToken: patientToken,
		})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		f.appointments.AssertNotCalled(t, "DoctorCancel", mock.Anything, mock.Anything)
	})
}

func TestDoctorRoutes(t *testing.T) {
	t.Run("List Doctors Is Public", func(t *testing.T) {
		f := newRouterFixture()
		f.doctorCases.On("ListDoctors", mock.Anything).Return([]responses.Doctor{{ID: testDoctorID, Name: "Dr. One", Fees: 100, Available: true}}, nil)

		rr := f.do("GET", "/api/v1/doctors", "", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Equal(t, "Dr. One", gjson.Get(body, "data.0.name").String())
		assert.False(t, gjson.Get(body, "data.0.password").Exists())
		assert.False(t, gjson.Get(body, "data.0.email").Exists())
	})

	t.Run("Dashboard Uses Authenticated Doctor", func(t *testing.T) {
		f := newRouterFixture()
		f.doctorCases.On("Dashboard", mock.Anything, testDoctorID).Return(&responses.DoctorDashboard{Earnings: 300, Appointments: 3, Patients: 2}, nil)

		rr := f.do("GET", "/api/v1/doctors/dashboard", "", map[string]string{
			constvars.HeaderDoctorToken: doctorToken,
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, int64(300), gjson.Get(rr.Body.String(), "data.earnings").Int())
	})

	t.Run("Doctor Toggles Own Availability", func(t *testing.T) {
		f := newRouterFixture()
		f.doctorCases.On("ChangeAvailability", mock.Anything, testDoctorID).Return(nil)

		rr := f.do("POST", "/api/v1/doctors/availability", "", map[string]string{
			constvars.HeaderDoctorToken: doctorToken,
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		f.doctorCases.AssertExpectations(t)
	})
}

func TestAdminRoutes(t *testing.T) {
	addBody := `{"name":"Dr. Two","email":"d2@example.com","password":"password123","speciality":"General physician","fees":50}`

	t.Run("Add Doctor Without API Key", func(t *testing.T) {
		f := newRouterFixture()

		rr := f.do("POST", "/api/v1/admin/doctors", addBody, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		f.doctorCases.AssertNotCalled(t, "AddDoctor", mock.Anything, mock.Anything)
	})

	t.Run("Add Doctor With API Key", func(t *testing.T) {
		f := newRouterFixture()
		f.doctorCases.On("AddDoctor", mock.Anything, mock.AnythingOfType("*requests.AddDoctor")).Return(testDoctorID, nil)

		rr := f.do("POST", "/api/v1/admin/doctors", addBody, map[string]string{
			constvars.HeaderAPIKey: testAPIKey,
		})

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, testDoctorID, gjson.Get(rr.Body.String(), "data.docId").String())
	})

	t.Run("Change Availability By Doctor ID", func(t *testing.T) {
		f := newRouterFixture()
		f.doctorCases.On("ChangeAvailability", mock.Anything, testDoctorID).Return(nil)

		rr := f.do("POST", "/api/v1/admin/doctors/availability", `{"docId":"`+testDoctorID+`"}`, map[string]string{
			constvars.HeaderAPIKey: testAPIKey,
		})

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestPaymentRoutes(t *testing.T) {
	t.Run("Initiate Returns PayUrl", func(t *testing.T) {
		f := newRouterFixture()
		f.payments.On("InitiatePayment", mock.Anything, &requests.InitiatePayment{AppointmentID: testAppointmentID, UserID: testUserID}).
			Return(&responses.InitiatePayment{PayUrl: "https://test-payment.momo.vn/pay/abc", OrderID: "MOMO1"}, nil)

		rr := f.do("POST", "/api/v1/users/payments/momo", `{"appointmentId":"`+testAppointmentID+`"}`, map[string]string{
			constvars.HeaderPatientToken: patientToken,
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://test-payment.momo.vn/pay/abc", gjson.Get(rr.Body.String(), "data.payUrl").String())
	})

	t.Run("Gateway Failure Maps To 502", func(t *testing.T) {
		f := newRouterFixture()
		f.payments.On("InitiatePayment", mock.Anything, mock.Anything).Return(nil, exceptions.ErrGatewayMissingPayURL(nil))

		rr := f.do("POST", "/api/v1/users/payments/momo", `{"appointmentId":"`+testAppointmentID+`"}`, map[string]string{
			constvars.HeaderPatientToken: patientToken,
		})

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, constvars.ErrCodeGatewayError, gjson.Get(rr.Body.String(), "error_code").String())
	})

	t.Run("Confirm With Empty ID Reaches Usecase", func(t *testing.T) {
		f := newRouterFixture()
		f.payments.On("ConfirmPayment", mock.Anything, &requests.ConfirmPayment{}).Return(exceptions.ErrAppointmentNotExist(nil))

		rr := f.do("POST", "/api/v1/users/payments/confirm", `{}`, map[string]string{
			constvars.HeaderPatientToken: patientToken,
		})

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("IPN Needs No Session", func(t *testing.T) {
		f := newRouterFixture()
		f.payments.On("HandleNotification", mock.Anything, mock.MatchedBy(func(n *requests.MomoNotification) bool {
			return n.OrderID == "MOMO1" && n.Signature == "abc"
		})).Return(nil)

		rr := f.do("POST", "/api/v1/payments/momo/ipn", `{"orderId":"MOMO1","resultCode":0,"signature":"abc"}`, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		f.payments.AssertExpectations(t)
	})

	t.Run("IPN With Bad Signature", func(t *testing.T) {
		f := newRouterFixture()
		f.payments.On("HandleNotification", mock.Anything, mock.Anything).Return(exceptions.ErrInvalidGatewaySignature(nil))

		rr := f.do("POST", "/api/v1/payments/momo/ipn", `{"orderId":"MOMO1","signature":"forged"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
