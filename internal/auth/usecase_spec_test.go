// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package auth_test

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/signgate/signgate/internal/auth"
	"github.com/signgate/signgate/internal/parameter"
	"github.com/signgate/signgate/internal/value"
)

// stubBackend returns a fixed outcome and counts calls.
type stubBackend struct {
	outcome auth.Outcome
	signIns atomic.Int32
	signUps atomic.Int32
}

func (b *stubBackend) SignIn(_ context.Context, _ parameter.SignInCredentials) (auth.Outcome, error) {
	b.signIns.Add(1)
	return b.outcome, nil
}

func (b *stubBackend) SignUp(_ context.Context, _ parameter.SignUpCredentials) (auth.Outcome, error) {
	b.signUps.Add(1)
	return b.outcome, nil
}

var _ = Describe("SignUpUseCase", func() {
	var (
		ctx     context.Context
		backend *stubBackend
		useCase *auth.SignUpUseCase
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = &stubBackend{}
		var err error
		useCase, err = auth.NewSignUpUseCase(backend)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("when the e-mail is already registered", func() {
		BeforeEach(func() {
			backend.outcome = failureOutcome()
		})

		It("returns the backend failure with its status and message", func() {
			outcome, err := useCase.Execute(ctx, validSignUp())
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.IsFailure()).To(BeTrue())
			Expect(outcome.Status()).To(Equal(http.StatusBadRequest))

			payload, _ := outcome.Failure()
			Expect(payload.Message).To(Equal(duplicateEmailMessage))
		})

		It("calls the backend only once", func() {
			_, _ = useCase.Execute(ctx, validSignUp())
			Expect(backend.signUps.Load()).To(BeEquivalentTo(1))
			Expect(backend.signIns.Load()).To(BeZero())
		})
	})

	Context("when the account is created", func() {
		BeforeEach(func() {
			backend.outcome = successOutcome()
		})

		It("returns the authentication payload unchanged", func() {
			outcome, err := useCase.Execute(ctx, validSignUp())
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Status()).To(Equal(http.StatusOK))

			payload, ok := outcome.Success()
			Expect(ok).To(BeTrue())
			Expect(payload).To(Equal(successPayload()))
		})
	})

	Context("when the input is invalid", func() {
		It("fails with the first invalid field and skips the backend", func() {
			outcome, err := useCase.Execute(ctx, parameter.NewSignUp("Gabriel Ramos", "bed", ""))
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Status()).To(Equal(http.StatusBadRequest))

			payload, _ := outcome.Failure()
			Expect(payload.Message).To(Equal(value.EmailRule.InvalidMessage))
			Expect(backend.signUps.Load()).To(BeZero())
		})
	})

	Context("when invoked concurrently", func() {
		BeforeEach(func() {
			backend.outcome = successOutcome()
		})

		It("produces one result per invocation", func() {
			const invocations = 32
			var wg sync.WaitGroup
			results := make(chan auth.Outcome, invocations)

			for range invocations {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					outcome, err := useCase.Execute(ctx, validSignUp())
					Expect(err).NotTo(HaveOccurred())
					results <- outcome
				}()
			}
			wg.Wait()
			close(results)

			Expect(results).To(HaveLen(invocations))
			Expect(backend.signUps.Load()).To(BeEquivalentTo(invocations))
		})
	})
})

var _ = Describe("SignInUseCase", func() {
	It("calls the backend once for valid credentials", func() {
		backend := &stubBackend{outcome: successOutcome()}
		useCase, err := auth.NewSignInUseCase(backend)
		Expect(err).NotTo(HaveOccurred())

		outcome, err := useCase.Execute(context.Background(), validSignIn())
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.IsSuccess()).To(BeTrue())
		Expect(backend.signIns.Load()).To(BeEquivalentTo(1))
	})
})
