package common_test

import (
	"errors"
	"net/http"

	"rolegate/common"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Errors", func() {
	Describe("ErrBadParam", func() {
		Describe("Error", func() {
			It("should return default message if cause is nil", func() {
				err := common.ErrBadParam{}
				Expect(err.Error()).To(Equal("common.bad_param"))
			})
			It("should invoke the Error() function of cause property if cause is not nil", func() {
				err := common.ErrBadParam{Cause: errors.New("name is required")}
				Expect(err.Error()).To(Equal("name is required"))
			})
		})

		Describe("Respond", func() {
			It("should respond bad request with the cause message", func() {
				err := common.ErrBadParam{Cause: errors.New("name is required")}
				respond := err.Respond()
				Expect(respond.Status).To(Equal(http.StatusBadRequest))
				Expect(respond.Code).To(Equal("common.bad_param"))
				Expect(respond.Message).To(Equal("name is required"))
			})
		})

		Describe("Unwrap", func() {
			It("should expose the cause to errors.Is", func() {
				cause := errors.New("boom")
				err := common.ErrBadParam{Cause: cause}
				Expect(errors.Is(&err, cause)).To(BeTrue())
			})
		})
	})
})
