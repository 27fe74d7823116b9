// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, performs business operations
// (ownership checks, derived fields, token issuance), and calls
// repository methods to interact with the data.
package service
