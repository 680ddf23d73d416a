package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Deal      DealSvcFacade
	Inventory InventorySvcFacade
	Asset     AssetSvcFacade
	Accessory AccessorySvcFacade
	Client    ClientSvcFacade
}
