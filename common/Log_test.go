package common_test

import (
	"os"

	"rolegate/common"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("Log", func() {
	Describe("GetServiceName", func() {
		It("should fall back to the module name", func() {
			os.Unsetenv("APP_NAME")
			Expect(common.GetServiceName()).To(Equal("rolegate"))
		})
		It("should prefer APP_NAME", func() {
			os.Setenv("APP_NAME", "rolegate-stage")
			defer os.Unsetenv("APP_NAME")
			Expect(common.GetServiceName()).To(Equal("rolegate-stage"))
		})
	})

	Describe("DefaultFieldsHook", func() {
		It("should stamp every entry with the service name", func() {
			os.Unsetenv("APP_NAME")
			hook := common.DefaultFieldsHook{}
			entry := logrus.Entry{Data: logrus.Fields{}}
			Expect(hook.Fire(&entry)).To(BeNil())
			Expect(entry.Data["serviceName"]).To(Equal("rolegate"))
		})
	})
})
