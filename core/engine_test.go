// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/core"
	"github.com/devblok/kiln/device"
	"github.com/devblok/kiln/surface"
	"github.com/devblok/kiln/swapchain"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

type recorder struct {
	events []string
}

func (r *recorder) add(event string) {
	r.events = append(r.events, event)
}

type fakeWindow struct {
	rec        *recorder
	srf        *fakeSurface
	surfaceErr error
}

func (w *fakeWindow) InstanceExtensions() []string {
	return []string{"VK_KHR_surface", "VK_KHR_xlib_surface"}
}

func (w *fakeWindow) ProcAddr() unsafe.Pointer { return nil }

func (w *fakeWindow) CreateSurface(instance vk.Instance) (surface.Surface, error) {
	if w.surfaceErr != nil {
		return nil, w.surfaceErr
	}
	w.rec.add("create surface")
	return w.srf, nil
}

type fakeSurface struct {
	rec     *recorder
	present map[string][]uint32
	caps    surface.Capabilities
	capsErr error
}

func (s *fakeSurface) SupportsPresentation(dev device.PhysicalDeviceInfo, family uint32) bool {
	for _, f := range s.present[dev.Name] {
		if f == family {
			return true
		}
	}
	return false
}

func (s *fakeSurface) Handle() vk.Surface { return vk.NullSurface }

func (s *fakeSurface) Capabilities(dev device.PhysicalDeviceInfo) (surface.Capabilities, error) {
	s.rec.add("query capabilities")
	return s.caps, s.capsErr
}

func (s *fakeSurface) DrawableSize() (uint32, uint32) {
	return s.caps.CurrentExtent.Width, s.caps.CurrentExtent.Height
}

func (s *fakeSurface) Destroy() { s.rec.add("destroy surface") }

type fakeInstance struct {
	rec     *recorder
	devices []device.PhysicalDeviceInfo
	enumErr error

	// actual overrides the extensions a device really supports when opened
	actual map[string]device.ExtensionSet

	swapchainErr error
	log          *logrus.Entry
}

func (i *fakeInstance) Handle() vk.Instance { return nil }

func (i *fakeInstance) PhysicalDevices() ([]device.PhysicalDeviceInfo, error) {
	return i.devices, i.enumErr
}

func (i *fakeInstance) OpenDevice(dev device.PhysicalDeviceInfo, family device.QueueFamilySelection, required device.ExtensionSet) (core.Device, error) {
	i.rec.add("open device " + dev.Name)
	if actual, ok := i.actual[dev.Name]; ok {
		dev.Extensions = actual
		if _, err := device.Open(dev, family, required, i.log); err != nil {
			return nil, err
		}
	}
	return &fakeDevice{rec: i.rec, family: family.Index, swapchainErr: i.swapchainErr}, nil
}

func (i *fakeInstance) Destroy() { i.rec.add("destroy instance") }

type fakeDevice struct {
	rec          *recorder
	family       uint32
	swapchainErr error
}

func (d *fakeDevice) Queue() device.Queue {
	return device.Queue{Family: d.family, Priority: device.QueuePriority}
}

func (d *fakeDevice) CreateSwapchain(srf vk.Surface, cfg swapchain.Config) (core.Swapchain, error) {
	d.rec.add("create swapchain")
	if d.swapchainErr != nil {
		return nil, d.swapchainErr
	}
	return &fakeSwapchain{rec: d.rec, cfg: cfg}, nil
}

func (d *fakeDevice) Destroy() { d.rec.add("destroy device") }

type fakeSwapchain struct {
	rec *recorder
	cfg swapchain.Config
}

func (s *fakeSwapchain) Config() swapchain.Config { return s.cfg }

func (s *fakeSwapchain) Images() []swapchain.Image {
	images := make([]swapchain.Image, s.cfg.ImageCount)
	for i := range images {
		images[i] = swapchain.Image{Index: i, Format: s.cfg.Format, Extent: s.cfg.Extent}
	}
	return images
}

func (s *fakeSwapchain) Destroy() { s.rec.add("destroy swapchain") }

type fixture struct {
	rec      *recorder
	window   *fakeWindow
	instance *fakeInstance
	instErr  error
	gotCfg   core.InstanceConfiguration
	logger   *logrus.Logger
	hook     *test.Hook
}

var (
	formatA = surface.Format{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	formatB = surface.Format{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
)

func gpu(name string, t device.DeviceType, extensions ...string) device.PhysicalDeviceInfo {
	return device.PhysicalDeviceInfo{
		Name:       name,
		Type:       t,
		Extensions: device.NewExtensionSet(extensions...),
		QueueFamilies: []device.QueueFamilyInfo{
			{Index: 0, QueueCount: 16, Graphics: true, Compute: true, Transfer: true},
		},
	}
}

func newFixture() *fixture {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	rec := &recorder{}
	srf := &fakeSurface{
		rec:     rec,
		present: map[string][]uint32{"discrete": {0}, "integrated": {0}, "llvmpipe": {0}},
		caps: surface.Capabilities{
			Formats:                 []surface.Format{formatA, formatB},
			MinImageCount:           2,
			CurrentExtent:           vk.Extent2D{Width: 800, Height: 600},
			SupportedTransforms:     vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit),
			CurrentTransform:        vk.SurfaceTransformIdentityBit,
			SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit | vk.CompositeAlphaPreMultipliedBit),
		},
	}
	return &fixture{
		rec:    rec,
		window: &fakeWindow{rec: rec, srf: srf},
		instance: &fakeInstance{
			rec: rec,
			devices: []device.PhysicalDeviceInfo{
				gpu("integrated", device.IntegratedGPU, "VK_KHR_swapchain"),
				gpu("discrete", device.DiscreteGPU, "VK_KHR_swapchain"),
			},
			log: logger.WithField("target", "device"),
		},
		logger: logger,
		hook:   hook,
	}
}

func (f *fixture) newInstance(cfg core.InstanceConfiguration, log *logrus.Entry) (core.Instance, error) {
	f.gotCfg = cfg
	if f.instErr != nil {
		return nil, f.instErr
	}
	f.rec.add("create instance")
	return f.instance, nil
}

func (f *fixture) engine() (*core.Engine, error) {
	return core.NewEngine(core.DefaultConfiguration, f.window, f.newInstance, f.logger)
}

func TestNewEngine(t *testing.T) {
	f := newFixture()

	e, err := f.engine()
	require.NoError(t, err)

	assert.Equal(t, "discrete", e.PhysicalDevice().Name)
	assert.Equal(t, device.QueueFamilySelection{Index: 0, Graphics: true, Present: true}, e.QueueFamily())
	assert.Equal(t, uint32(0), e.Queue().Family)
	assert.Equal(t, float32(0.5), e.Queue().Priority)

	cfg := e.SwapchainConfig()
	assert.Equal(t, uint32(2), cfg.ImageCount)
	assert.Equal(t, formatA.Format, cfg.Format)
	assert.Equal(t, vk.CompositeAlphaOpaqueBit, cfg.CompositeAlpha)
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, cfg.Extent)
	assert.Len(t, e.Images(), 2)

	assert.Equal(t, "kiln", f.gotCfg.ApplicationName)
	assert.Equal(t, []string{"VK_KHR_surface", "VK_KHR_xlib_surface"}, f.gotCfg.Extensions)

	e.Destroy()
	assert.Equal(t, []string{
		"create instance",
		"create surface",
		"open device discrete",
		"query capabilities",
		"create swapchain",
		"destroy swapchain",
		"destroy device",
		"destroy surface",
		"destroy instance",
	}, f.rec.events)
}

func TestNewEngineNoSuitableDevice(t *testing.T) {
	f := newFixture()
	f.instance.devices = []device.PhysicalDeviceInfo{gpu("llvmpipe", device.CPU)}

	e, err := f.engine()
	require.Error(t, err)
	assert.Nil(t, e)
	assert.True(t, errors.Is(err, device.ErrNoSuitableDevice))
	assert.Contains(t, err.Error(), "no vulkan capable devices found")

	assert.Equal(t, []string{
		"create instance",
		"create surface",
		"destroy surface",
		"destroy instance",
	}, f.rec.events)
}

func TestNewEngineUnsupportedDeviceExtension(t *testing.T) {
	f := newFixture()
	f.instance.actual = map[string]device.ExtensionSet{
		"discrete": device.NewExtensionSet("VK_KHR_maintenance1"),
	}

	e, err := f.engine()
	require.Error(t, err)
	assert.Nil(t, e)
	assert.True(t, errors.Is(err, device.ErrFeatureRestrictionNotMet))
	assert.True(t, errors.Is(err, device.ErrDeviceCreation))

	assert.NotContains(t, f.rec.events, "create swapchain")
	assert.NotContains(t, f.rec.events, "query capabilities")
	assert.Equal(t, []string{
		"create instance",
		"create surface",
		"open device discrete",
		"destroy surface",
		"destroy instance",
	}, f.rec.events)
}

func TestNewEngineInstanceFailure(t *testing.T) {
	f := newFixture()
	f.instErr = errors.New("vk.CreateInstance(): vulkan error: incompatible driver")

	e, err := f.engine()
	require.Error(t, err)
	assert.Nil(t, e)
	assert.True(t, errors.Is(err, core.ErrInstanceCreation))
	assert.Contains(t, errors.FlattenHints(err), "Vulkan driver")
	assert.Empty(t, f.rec.events)
}

func TestNewEngineSurfaceFailure(t *testing.T) {
	f := newFixture()
	f.window.surfaceErr = errors.New("SDL_Vulkan_CreateSurface failed")

	_, err := f.engine()
	require.Error(t, err)
	assert.True(t, errors.Is(err, surface.ErrSurfaceCreation))
	assert.Equal(t, []string{"create instance", "destroy instance"}, f.rec.events)
}

func TestNewEngineEnumerationFailure(t *testing.T) {
	f := newFixture()
	f.instance.enumErr = errors.New("vk.EnumeratePhysicalDevices(): vulkan error: out of host memory")

	_, err := f.engine()
	require.Error(t, err)
	assert.True(t, errors.Is(err, device.ErrNoSuitableDevice))
	assert.Equal(t, []string{"create instance", "create surface", "destroy surface", "destroy instance"}, f.rec.events)
}

func TestNewEngineCapabilitiesFailure(t *testing.T) {
	f := newFixture()
	f.window.srf.capsErr = errors.Wrap(surface.ErrNoCapabilities, "no surface formats")

	_, err := f.engine()
	require.Error(t, err)
	assert.True(t, errors.Is(err, swapchain.ErrSwapchainCreation))
	assert.True(t, errors.Is(err, surface.ErrNoCapabilities))
	assert.Equal(t, []string{
		"create instance",
		"create surface",
		"open device discrete",
		"query capabilities",
		"destroy device",
		"destroy surface",
		"destroy instance",
	}, f.rec.events)
}

func TestNewEngineNoFormats(t *testing.T) {
	f := newFixture()
	f.window.srf.caps.Formats = nil

	_, err := f.engine()
	require.Error(t, err)
	assert.True(t, errors.Is(err, swapchain.ErrSwapchainCreation))
	assert.NotContains(t, f.rec.events, "create swapchain")
}

func TestNewEngineSwapchainFailure(t *testing.T) {
	f := newFixture()
	f.instance.swapchainErr = errors.New("vk.CreateSwapchain(): vulkan error: native window in use")

	_, err := f.engine()
	require.Error(t, err)
	assert.True(t, errors.Is(err, swapchain.ErrSwapchainCreation))
	assert.Equal(t, []string{
		"create instance",
		"create surface",
		"open device discrete",
		"query capabilities",
		"create swapchain",
		"destroy device",
		"destroy surface",
		"destroy instance",
	}, f.rec.events)
}

func TestNewEngineLogsSelection(t *testing.T) {
	f := newFixture()

	e, err := f.engine()
	require.NoError(t, err)
	defer e.Destroy()

	var chose bool
	for _, entry := range f.hook.AllEntries() {
		if entry.Level == logrus.DebugLevel && entry.Message == "Chose device: discrete, (type DiscreteGpu)" {
			chose = true
			assert.Equal(t, "device", entry.Data["target"])
		}
	}
	assert.True(t, chose)
}
