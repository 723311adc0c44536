package integration

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/gemgrid/gridconfig/api/v1"
	"github.com/gemgrid/gridconfig/client"
	"github.com/gemgrid/gridconfig/test"
	"github.com/gemgrid/gridconfig/xmlconfig"
)

var _ = Describe("Declarative client regions", func() {
	var driver *test.StubDriver
	var factory *client.CacheFactory

	BeforeEach(func() {
		driver = test.NewStubDriver(capableGrid(), suiteLogger())
		factory = client.NewCacheFactory(driver, suiteLogger())
	})

	Load := func(doc string) {
		By("loading the declarative document")
		factory.SetCacheXML([]byte(doc))
		Expect(factory.PostConstruct()).Should(Succeed())
	}

	LoadError := func(doc string) error {
		By("loading a declarative document that must be rejected")
		factory.SetCacheXML([]byte(doc))
		err := factory.PostConstruct()
		Expect(err).Should(HaveOccurred())
		return err
	}

	Definition := func(name string) *v1.RegionDefinition {
		def := driver.Cache().Definition(name)
		Expect(def).ShouldNot(BeNil())
		return def
	}

	Region := func(name string) *test.StubRegion {
		region := driver.Cache().Region(name)
		Expect(region).ShouldNot(BeNil())
		return region
	}

	Context("with only an id", func() {
		It("should translate to a local region wired to the default cache", func() {
			Load(`<client-cache><client-region id="simple"/></client-cache>`)

			Expect(Definition("simple")).Should(test.EqualRegion(&test.RegionValues{
				Name:     "simple",
				CacheRef: "gemfire-cache",
				Scope:    v1.ScopeLocal,
				Policy:   "unset",
			}))

			By("registering no interests at all")
			Expect(Definition("simple").HasInterests()).Should(BeFalse())
			Expect(Region("simple").Interests()).Should(BeEmpty())
		})

		It("should prefer an explicit name over the id", func() {
			Load(`<client-cache><client-region id="ignored" name="preferred"/></client-cache>`)

			Expect(driver.Cache().RegionNames()).Should(ConsistOf("preferred"))
		})
	})

	Context("with storage settings", func() {
		It("should derive the declared data policy", func() {
			Load(`<client-cache><client-region id="orders" data-policy="normal"/></client-cache>`)

			Expect(Definition("orders")).Should(test.EqualRegion(&test.RegionValues{
				Name:     "orders",
				CacheRef: "gemfire-cache",
				Scope:    v1.ScopeLocal,
				Policy:   "derived(NORMAL)",
			}))
		})

		It("should freeze the policy of persistent regions", func() {
			Load(`<client-cache><client-region id="audit" persistent="true" data-policy="normal"/></client-cache>`)

			Expect(Definition("audit").Policy.String()).Should(Equal("frozen(PERSISTENT_REPLICATE)"))
		})

		It("should downgrade to a storing policy when eviction is declared", func() {
			Load(`<client-cache>
  <client-region id="orders">
    <eviction type="lru-entry" maximum="1000" action="local-destroy"/>
  </client-region>
</client-cache>`)

			def := Definition("orders")
			Expect(def.Policy.String()).Should(Equal("derived(NORMAL)"))
			Expect(def.Attributes.HasEviction()).Should(BeTrue())
			Expect(def.Attributes.Eviction.Algorithm).Should(Equal(v1.EvictionAlgorithmLRUEntry))
			Expect(def.Attributes.Eviction.Action).Should(Equal(v1.EvictionActionLocalDestroy))
			Expect(def.Attributes.Eviction.Maximum).Should(Equal(1000))
		})

		It("should keep a frozen policy in the face of eviction", func() {
			Load(`<client-cache>
  <client-region id="audit" persistent="true">
    <eviction type="lru-heap" action="overflow-to-disk"/>
  </client-region>
</client-cache>`)

			Expect(Definition("audit").Policy.String()).Should(Equal("frozen(PERSISTENT_REPLICATE)"))
		})

		It("should carry the disk store settings through", func() {
			Load(`<client-cache>
  <client-region id="audit" persistent="true">
    <disk-store synchronous-writes="true" auto-compact="true" max-oplog-size="512" time-interval="3000" queue-size="50">
      <disk-dir location="/var/data/grid" max-size="2048"/>
    </disk-store>
  </client-region>
</client-cache>`)

			def := Definition("audit")
			Expect(def.Policy.String()).Should(Equal("frozen(PERSISTENT_REPLICATE)"))
			Expect(def.Attributes.HasDiskStore()).Should(BeTrue())

			store := def.Attributes.DiskStore
			Expect(store.SynchronousWrites).Should(BeTrue())
			Expect(store.AutoCompact).Should(BeTrue())
			Expect(store.MaxOplogSizeMB).Should(Equal(512))
			Expect(store.TimeIntervalMillis).Should(Equal(3000))
			Expect(store.QueueSize).Should(Equal(50))
			Expect(store.Dirs).Should(ConsistOf(v1.DiskDir{Location: "/var/data/grid", MaxSizeMB: 2048}))
		})
	})

	Context("against a grid without persistence support", func() {
		BeforeEach(func() {
			driver = test.NewStubDriver(legacyGrid(), suiteLogger())
			factory = client.NewCacheFactory(driver, suiteLogger())
		})

		It("should reject persistent regions and close the half configured cache", func() {
			err := LoadError(`<client-cache><client-region id="audit" persistent="true"/></client-cache>`)

			ce, ok := xmlconfig.AsConfigErrors(err)
			Expect(ok).Should(BeTrue())
			Expect(ce).Should(HaveLen(1))
			Expect(err.Error()).Should(ContainSubstring("6.5"))
			Expect(err.Error()).Should(ContainSubstring("[6.0]"))

			By("leaving the factory without a handle")
			Expect(factory.Cache()).Should(BeNil())
			Expect(factory.State()).Should(Equal(client.StateUninitialized))
			Expect(driver.Cache().Closed()).Should(BeTrue())
		})
	})

	Context("with cache listeners", func() {
		It("should attach declared types and host beans in document order", func() {
			hostListener := &auditListener{}
			factory.SetBeanResolver(beanMap{"order-auditor": hostListener})

			Load(`<client-cache>
  <client-region id="orders">
    <cache-listener>
      <bean type="integration.AuditListener"/>
    </cache-listener>
    <cache-listener ref="order-auditor"/>
  </client-region>
</client-cache>`)

			listeners := Region("orders").Listeners()
			Expect(listeners).Should(HaveLen(2))
			Expect(listeners[0]).Should(BeAssignableToTypeOf(&auditListener{}))
			Expect(listeners[0]).ShouldNot(BeIdenticalTo(hostListener))
			Expect(listeners[1]).Should(BeIdenticalTo(hostListener))

			By("wiring an empty interest collection alongside")
			Expect(Definition("orders").HasInterests()).Should(BeTrue())
			Expect(Definition("orders").Interests).Should(BeEmpty())
		})

		It("should let host beans shadow registered types", func() {
			shadow := &auditListener{}
			factory.SetBeanResolver(beanMap{auditListenerType: shadow})

			Load(`<client-cache>
  <client-region id="orders">
    <cache-listener><bean type="integration.AuditListener"/></cache-listener>
  </client-region>
</client-cache>`)

			Expect(Region("orders").Listeners()[0]).Should(BeIdenticalTo(shadow))
		})

		It("should deliver entry events to declaratively attached listeners", func() {
			Load(`<client-cache>
  <client-region id="orders">
    <cache-listener><bean type="integration.AuditListener"/></cache-listener>
  </client-region>
</client-cache>`)

			region := Region("orders")
			region.Emit(client.EntryEvent{Region: "orders", Op: client.EntryAdded, Key: "ORD-1", Value: "new"})
			region.Emit(client.EntryEvent{Region: "orders", Op: client.EntryRemoved, Key: "ORD-1", OldValue: "new"})

			audit, ok := region.Listeners()[0].(*auditListener)
			Expect(ok).Should(BeTrue())

			events := audit.Events()
			Expect(events).Should(HaveLen(2))
			Expect(events[0].Op).Should(Equal(client.EntryAdded))
			Expect(events[0].Key).Should(Equal("ORD-1"))
			Expect(events[1].Op).Should(Equal(client.EntryRemoved))
		})
	})

	Context("with interest registrations", func() {
		It("should register interests in document order with their options", func() {
			Load(`<client-cache>
  <client-region id="orders">
    <key-interest key="ORD-1" durable="true" result-policy="keys"/>
    <regex-interest pattern="ORD-.*" result-policy="none"/>
  </client-region>
</client-cache>`)

			interests := Region("orders").Interests()
			Expect(interests).Should(HaveLen(2))

			first, second := interests[0], interests[1]
			Expect(first.Def.Kind).Should(Equal(v1.InterestKey))
			Expect(first.Def.Durable).Should(BeTrue())
			Expect(first.Def.ResultPolicy).Should(Equal(v1.ResultPolicyKeys))
			Expect(first.Key).Should(Equal("ORD-1"))

			Expect(second.Def.Kind).Should(Equal(v1.InterestRegex))
			Expect(second.Def.Key.Literal).Should(Equal("ORD-.*"))
			Expect(second.Def.ResultPolicy).Should(Equal(v1.ResultPolicyNone))
			Expect(second.Def.Durable).Should(BeFalse())
			Expect(second.Key).Should(BeNil())

			Expect(Definition("orders")).Should(test.EqualRegion(&test.RegionValues{
				Name:      "orders",
				CacheRef:  "gemfire-cache",
				Scope:     v1.ScopeLocal,
				Policy:    "unset",
				Interests: 2,
			}))
		})

		It("should resolve interest keys from host beans", func() {
			orderKey := &struct{ ID int }{ID: 42}
			factory.SetBeanResolver(beanMap{"order-key": orderKey})

			Load(`<client-cache>
  <client-region id="orders">
    <key-interest key-ref="order-key" durable="true"/>
  </client-region>
</client-cache>`)

			interests := Region("orders").Interests()
			Expect(interests).Should(HaveLen(1))
			Expect(interests[0].Key).Should(BeIdenticalTo(orderKey))
		})

		It("should skip unknown children but keep the interest collection", func() {
			Load(`<client-cache>
  <client-region id="orders">
    <expiration timeout="300"/>
  </client-region>
</client-cache>`)

			def := Definition("orders")
			Expect(def.HasInterests()).Should(BeTrue())
			Expect(def.Interests).Should(BeEmpty())
			Expect(Region("orders").Interests()).Should(BeEmpty())
		})
	})

	Context("with several faulty regions", func() {
		It("should report every problem from one pass", func() {
			err := LoadError(`<client-cache>
  <client-region id="a" data-policy="bogus"/>
  <client-region id="b"><regex-interest durable="true"/></client-region>
</client-cache>`)

			ce, ok := xmlconfig.AsConfigErrors(err)
			Expect(ok).Should(BeTrue())
			Expect(ce).Should(HaveLen(2))
			Expect(ce[0].Region).Should(Equal("a"))
			Expect(ce[0].Reason).Should(ContainSubstring(`unknown data-policy "bogus"`))
			Expect(ce[1].Region).Should(Equal("b"))
			Expect(ce[1].Reason).Should(ContainSubstring("needs a pattern"))
			Expect(err.Error()).Should(ContainSubstring("multiple (2) configuration errors"))
		})
	})

	Context("alongside programmatic region beans", func() {
		It("should share the region instance created by the document", func() {
			Load(`<client-cache><client-region id="orders"/></client-cache>`)

			def := &v1.RegionDefinition{Name: "orders", CacheRef: "gemfire-cache", Scope: v1.ScopeLocal}
			bean := client.NewRegionFactoryBean(def, factory.Cache(), factory.Locator(), suiteLogger())
			Expect(bean.PostConstruct()).Should(Succeed())

			obj, err := bean.Object()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(obj).Should(BeIdenticalTo(Region("orders")))
		})
	})
})
