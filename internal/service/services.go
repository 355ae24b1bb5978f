package service

import (
	"github.com/deppfellow/vehicle-information/internal/lib/job"
	"github.com/deppfellow/vehicle-information/internal/repository"
	"github.com/deppfellow/vehicle-information/internal/server"
)

type Services struct {
	Vehicle *VehicleService
	Job     *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var notifier SubmissionNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Vehicle: NewVehicleService(repos.Vehicle, notifier, s.Logger),
		Job:     s.Job,
	}
}
