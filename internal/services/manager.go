package services

// ServiceManager groups the services the HTTP layer depends on.
type ServiceManager interface {
	Session() SessionService
	Catalog() CatalogService
	Export() ExportService
}

type serviceManager struct {
	session SessionService
	catalog CatalogService
	export  ExportService
}

func NewServiceManager(session SessionService, catalog CatalogService, export ExportService) ServiceManager {
	return &serviceManager{
		session: session,
		catalog: catalog,
		export:  export,
	}
}

func (m *serviceManager) Session() SessionService { return m.session }
func (m *serviceManager) Catalog() CatalogService { return m.catalog }
func (m *serviceManager) Export() ExportService   { return m.export }
