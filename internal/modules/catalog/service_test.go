package catalog

import (
	"context"
	"testing"

	"podstudio/internal/domain"
	"podstudio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockStudioRepository struct {
	mock.Mock
}

func (m *MockStudioRepository) Create(ctx context.Context, s *domain.Studio) error {
	args := m.Called(ctx, s)
	if s != nil {
		s.ID = 5 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockStudioRepository) Update(ctx context.Context, s *domain.Studio) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudioRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudioRepository) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Studio), args.Error(1)
}

func (m *MockStudioRepository) GetApproved(ctx context.Context, f repository.StudioFilters) ([]domain.Studio, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Studio), args.Get(1).(int64), args.Error(2)
}

func (m *MockStudioRepository) GetByOwner(ctx context.Context, ownerID int64) ([]domain.Studio, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Studio), args.Error(1)
}

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) ReplaceForStudio(ctx context.Context, studioID int64, days []domain.Availability) error {
	args := m.Called(ctx, studioID, days)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) GetByStudio(ctx context.Context, studioID int64) ([]domain.Availability, error) {
	args := m.Called(ctx, studioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Availability), args.Error(1)
}

func ownedStudio() *domain.Studio {
	return &domain.Studio{
		ID:        5,
		OwnerID:   2,
		Name:      "Waveform Rooms",
		OpenHour:  9,
		CloseHour: 18,
		Approved:  true,
	}
}

func validStudioRequest() StudioRequest {
	return StudioRequest{
		Name:      "Waveform Rooms",
		Address:   "12 Mercer St",
		City:      "Austin",
		OpenHour:  9,
		CloseHour: 18,
		Packages:  []PackageInput{{Key: "audio", Name: "Audio", Price: 60}},
		Addons:    []AddonInput{{Key: "edit", Name: "Edit", Price: 50, MaxQuantity: 2}},
	}
}

func TestService_CreateStudio_StartsUnapproved(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockAvail := new(MockAvailabilityRepository)
	mockStudios.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockStudios, mockAvail, nil)

	studio, err := service.CreateStudio(context.Background(), 2, validStudioRequest())

	assert.NoError(t, err)
	assert.False(t, studio.Approved)
	assert.Equal(t, int64(2), studio.OwnerID)
	assert.Len(t, studio.Packages, 1)
}

func TestService_CreateStudio_InvalidWindow(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockAvail := new(MockAvailabilityRepository)
	service := NewService(mockStudios, mockAvail, nil)

	req := validStudioRequest()
	req.OpenHour = 18
	req.CloseHour = 9

	_, err := service.CreateStudio(context.Background(), 2, req)

	assert.ErrorIs(t, err, ErrValidation)
	mockStudios.AssertNotCalled(t, "Create")
}

func TestService_CreateStudio_DuplicatePackageKey(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockAvail := new(MockAvailabilityRepository)
	service := NewService(mockStudios, mockAvail, nil)

	req := validStudioRequest()
	req.Packages = append(req.Packages, PackageInput{Key: "audio", Name: "Dup", Price: 70})

	_, err := service.CreateStudio(context.Background(), 2, req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_UpdateStudio_PreservesModeration(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockAvail := new(MockAvailabilityRepository)

	existing := ownedStudio()
	existing.Rating = 4.5
	existing.TotalReviews = 12
	mockStudios.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	mockStudios.On("Update", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockStudios, mockAvail, nil)

	req := validStudioRequest()
	req.Name = "Waveform Rooms North"
	updated, err := service.UpdateStudio(context.Background(), 2, 5, req)

	assert.NoError(t, err)
	assert.Equal(t, "Waveform Rooms North", updated.Name)
	assert.True(t, updated.Approved)
	assert.Equal(t, 4.5, updated.Rating)
	assert.Equal(t, 12, updated.TotalReviews)
}

func TestService_UpdateStudio_NotOwner(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockAvail := new(MockAvailabilityRepository)
	mockStudios.On("GetByID", mock.Anything, int64(5)).Return(ownedStudio(), nil)

	service := NewService(mockStudios, mockAvail, nil)

	_, err := service.UpdateStudio(context.Background(), 99, 5, validStudioRequest())

	assert.ErrorIs(t, err, ErrForbidden)
	mockStudios.AssertNotCalled(t, "Update")
}

func TestService_GetStudio_UnapprovedHiddenFromPublic(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockAvail := new(MockAvailabilityRepository)

	pending := ownedStudio()
	pending.Approved = false
	mockStudios.On("GetByID", mock.Anything, int64(5)).Return(pending, nil)

	service := NewService(mockStudios, mockAvail, nil)

	// Anonymous viewer
	_, err := service.GetStudio(context.Background(), 5, 0, "")
	assert.ErrorIs(t, err, ErrNotFound)

	// The owner still sees it
	got, err := service.GetStudio(context.Background(), 5, 2, string(domain.RoleOwner))
	assert.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)

	// Admins see everything
	got, err = service.GetStudio(context.Background(), 5, 77, string(domain.RoleAdmin))
	assert.NoError(t, err)
	assert.NotNil(t, got)
}

func TestService_SetAvailability_Valid(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockAvail := new(MockAvailabilityRepository)

	mockStudios.On("GetByID", mock.Anything, int64(5)).Return(ownedStudio(), nil)
	mockAvail.On("ReplaceForStudio", mock.Anything, int64(5), mock.Anything).Return(nil)

	service := NewService(mockStudios, mockAvail, nil)

	err := service.SetAvailability(context.Background(), 2, 5, SetAvailabilityRequest{
		Days: []DayInput{
			{Date: "2026-09-10", Slots: []HourInput{{Hour: 9, IsAvailable: true}, {Hour: 10, IsAvailable: true}}},
			{Date: "2026-09-11", Slots: []HourInput{{Hour: 17, IsAvailable: false}}},
		},
	})

	assert.NoError(t, err)
	mockAvail.AssertExpectations(t)
}

func TestService_SetAvailability_Rejections(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockAvail := new(MockAvailabilityRepository)
	mockStudios.On("GetByID", mock.Anything, int64(5)).Return(ownedStudio(), nil)

	service := NewService(mockStudios, mockAvail, nil)

	cases := []struct {
		name string
		req  SetAvailabilityRequest
	}{
		{"bad date format", SetAvailabilityRequest{Days: []DayInput{
			{Date: "10-09-2026", Slots: []HourInput{{Hour: 9, IsAvailable: true}}},
		}}},
		{"duplicate dates", SetAvailabilityRequest{Days: []DayInput{
			{Date: "2026-09-10", Slots: []HourInput{{Hour: 9, IsAvailable: true}}},
			{Date: "2026-09-10", Slots: []HourInput{{Hour: 10, IsAvailable: true}}},
		}}},
		{"duplicate hours", SetAvailabilityRequest{Days: []DayInput{
			{Date: "2026-09-10", Slots: []HourInput{{Hour: 9, IsAvailable: true}, {Hour: 9, IsAvailable: true}}},
		}}},
		{"hour before opening", SetAvailabilityRequest{Days: []DayInput{
			{Date: "2026-09-10", Slots: []HourInput{{Hour: 8, IsAvailable: true}}},
		}}},
		{"hour at closing", SetAvailabilityRequest{Days: []DayInput{
			{Date: "2026-09-10", Slots: []HourInput{{Hour: 18, IsAvailable: true}}},
		}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.SetAvailability(context.Background(), 2, 5, tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	mockAvail.AssertNotCalled(t, "ReplaceForStudio")
}

func TestService_GetAvailableSlots_Projection(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockAvail := new(MockAvailabilityRepository)

	records := []domain.Availability{
		{StudioID: 5, Date: "2026-09-10", Slots: []domain.Slot{
			{Hour: 9, IsAvailable: true},
			{Hour: 10, IsAvailable: false},
			{Hour: 11, IsAvailable: true},
		}},
		// Fully booked day must be omitted from the projection.
		{StudioID: 5, Date: "2026-09-11", Slots: []domain.Slot{
			{Hour: 9, IsAvailable: false},
		}},
		{StudioID: 5, Date: "2026-09-12", Slots: []domain.Slot{
			{Hour: 14, IsAvailable: true},
		}},
	}
	mockAvail.On("GetByStudio", mock.Anything, int64(5)).Return(records, nil)

	service := NewService(mockStudios, mockAvail, nil)

	out, err := service.GetAvailableSlots(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, []DaySlots{
		{Date: "2026-09-10", Hours: []int{9, 11}},
		{Date: "2026-09-12", Hours: []int{14}},
	}, out)
}

func TestService_DeleteStudio_MissingStudio(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockAvail := new(MockAvailabilityRepository)
	mockStudios.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockStudios, mockAvail, nil)

	err := service.DeleteStudio(context.Background(), 2, 404)

	assert.ErrorIs(t, err, ErrNotFound)
	mockStudios.AssertNotCalled(t, "Delete")
}
