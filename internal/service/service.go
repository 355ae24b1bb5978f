// Package service contains the vehicle business logic.
//
// It sits between the handlers and the repository gateway: it maps
// transfer objects to entities, calls the gateway and turns every outcome,
// including storage failures, into a vehicle.ResponseData envelope.
package service
