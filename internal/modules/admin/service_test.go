package admin

import (
	"context"
	"testing"

	"podstudio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockStudioRepository struct {
	mock.Mock
}

func (m *MockStudioRepository) GetPending(ctx context.Context) ([]domain.Studio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Studio), args.Error(1)
}

func (m *MockStudioRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) DeleteWithRestore(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func TestService_ListPendingStudios(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockBookings := new(MockBookingRepository)

	pending := []domain.Studio{{ID: 5, Name: "Waveform Rooms", Approved: false}}
	mockStudios.On("GetPending", mock.Anything).Return(pending, nil)

	service := NewService(mockStudios, mockBookings, nil)

	out, err := service.ListPendingStudios(context.Background())

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.False(t, out[0].Approved)
}

func TestService_ApproveStudio(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockBookings := new(MockBookingRepository)
	mockStudios.On("SetApproved", mock.Anything, int64(5), true).Return(nil)

	service := NewService(mockStudios, mockBookings, nil)

	assert.NoError(t, service.ApproveStudio(context.Background(), 5))
	mockStudios.AssertExpectations(t)
}

func TestService_RejectStudio(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockBookings := new(MockBookingRepository)
	mockStudios.On("SetApproved", mock.Anything, int64(5), false).Return(nil)

	service := NewService(mockStudios, mockBookings, nil)

	assert.NoError(t, service.RejectStudio(context.Background(), 5))
}

func TestService_ApproveStudio_Missing(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockBookings := new(MockBookingRepository)
	mockStudios.On("SetApproved", mock.Anything, int64(404), true).Return(gorm.ErrRecordNotFound)

	service := NewService(mockStudios, mockBookings, nil)

	err := service.ApproveStudio(context.Background(), 404)
	assert.ErrorIs(t, err, ErrStudioNotFound)
}

func TestService_DeleteBooking(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockBookings := new(MockBookingRepository)

	deleted := &domain.Booking{ID: 9, StudioID: 5, Hours: []int{9, 10}}
	mockBookings.On("DeleteWithRestore", mock.Anything, int64(9)).Return(deleted, nil)

	service := NewService(mockStudios, mockBookings, nil)

	assert.NoError(t, service.DeleteBooking(context.Background(), 9))
	mockBookings.AssertExpectations(t)
}

func TestService_DeleteBooking_Missing(t *testing.T) {
	mockStudios := new(MockStudioRepository)
	mockBookings := new(MockBookingRepository)
	mockBookings.On("DeleteWithRestore", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockStudios, mockBookings, nil)

	err := service.DeleteBooking(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
