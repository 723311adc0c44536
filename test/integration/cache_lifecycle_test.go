package integration

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gemgrid/gridconfig/client"
	"github.com/gemgrid/gridconfig/test"
)

var _ = Describe("Cache factory", func() {
	var driver *test.StubDriver
	var factory *client.CacheFactory

	BeforeEach(func() {
		driver = test.NewStubDriver(capableGrid(), suiteLogger())
		factory = client.NewCacheFactory(driver, suiteLogger())
	})

	Construct := func() {
		By("creating the cache successfully")
		Expect(factory.PostConstruct()).Should(Succeed())
	}

	Context("with default configuration", func() {
		It("should create the cache and publish it under the default bean name", func() {
			Construct()

			Expect(factory.State()).Should(Equal(client.StateReady))
			Expect(factory.BeanName()).Should(Equal("gemfire-cache"))
			Expect(driver.CreateCalls()).Should(Equal(1))

			By("exposing the cache as the factory object")
			obj, err := factory.Object()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(obj).Should(BeIdenticalTo(driver.Cache()))
			Expect(factory.Object()).Should(BeIdenticalTo(factory.Cache()))
		})

		It("should load the implicit empty document", func() {
			Construct()

			By("leaving the cache without regions")
			Expect(driver.Cache().RegionNames()).Should(BeEmpty())
		})

		It("should keep the open cache across repeated initialization", func() {
			Construct()
			first := driver.Cache()

			By("running initialization again")
			Expect(factory.PostConstruct()).Should(Succeed())

			Expect(driver.CreateCalls()).Should(Equal(1))
			Expect(factory.Cache()).Should(BeIdenticalTo(client.ClientCache(first)))
		})
	})

	Context("with driver properties", func() {
		It("should pass the configured properties to the driver", func() {
			factory.SetProperties(client.Properties{"name": "trading-cache", "locators": "host1[10334]"})

			Construct()
			Expect(driver.Cache().Name()).Should(Equal("trading-cache"))
		})
	})

	Context("when the cluster is unreachable", func() {
		It("should report the creation failure untouched and recover on retry", func() {
			driver.CreateErr = fmt.Errorf("bootstrap: %w", test.ErrStubOffline)

			err := factory.PostConstruct()
			Expect(err).Should(HaveOccurred())
			Expect(errors.Is(err, test.ErrStubOffline)).Should(BeTrue())
			Expect(factory.State()).Should(Equal(client.StateUninitialized))
			Expect(factory.Cache()).Should(BeNil())

			By("translating the failure into the access error taxonomy")
			translated := factory.TranslateAccessError(err)
			ae, ok := client.AsAccessError(translated)
			Expect(ok).Should(BeTrue())
			Expect(ae.Kind()).Should(Equal(client.KindConnection))

			By("creating the cache once the cluster is back")
			driver.CreateErr = nil
			Construct()
			Expect(driver.CreateCalls()).Should(Equal(2))
		})

		It("should leave provider errors alone when no translation applies", func() {
			plain := errors.New("name already taken")
			Expect(factory.TranslateAccessError(plain)).Should(BeNil())
		})
	})

	Context("when the declarative load fails", func() {
		It("should close the half configured cache and stay uninitialized", func() {
			driver.LoadErr = errors.New("declarative load refused")

			err := factory.PostConstruct()
			Expect(err).Should(MatchError("declarative load refused"))
			Expect(factory.State()).Should(Equal(client.StateUninitialized))
			Expect(factory.Cache()).Should(BeNil())
			Expect(driver.Cache().Closed()).Should(BeTrue())
		})
	})

	Context("on teardown", func() {
		It("should close the cache, release the connection and refuse to restart", func() {
			Construct()
			cache := driver.Cache()
			conn := driver.Connection()

			By("destroying the factory")
			Expect(factory.Destroy()).Should(Succeed())

			Expect(cache.Closed()).Should(BeTrue())
			Expect(conn.Released()).Should(BeTrue())
			Expect(conn.Connected()).Should(BeFalse())
			Expect(factory.Cache()).Should(BeNil())
			Expect(factory.State()).Should(Equal(client.StateDestroyed))

			By("tolerating a second destroy")
			Expect(factory.Destroy()).Should(Succeed())

			By("rejecting initialization after destroy")
			err := factory.PostConstruct()
			Expect(err).Should(MatchError(ContainSubstring("destroyed")))
		})

		It("should run every teardown step and collect the failures", func() {
			Construct()
			driver.Cache().CloseErr = errors.New("close refused")
			driver.Connection().DisconnectErr = errors.New("socket stuck")

			err := factory.Destroy()
			Expect(err).Should(HaveOccurred())

			te, ok := client.AsTeardownErrors(err)
			Expect(ok).Should(BeTrue())
			Expect(te).Should(HaveLen(2))
			Expect(err.Error()).Should(ContainSubstring("multiple (2) teardown errors"))

			By("still releasing the connection resources")
			Expect(driver.Connection().Released()).Should(BeTrue())
		})
	})
})
