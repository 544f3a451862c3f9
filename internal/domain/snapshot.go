package domain

// Snapshot é o recorte imutável das coleções de registros consumido pelo
// motor de inteligência. A camada de dados monta o snapshot; o motor apenas
// o percorre, sem mutação.
type Snapshot struct {
	Customers []*Customer `json:"customers"`
	Orders    []*Order    `json:"orders"`
	Quotes    []*Quote    `json:"quotes"`
	Payments  []*Payment  `json:"payments"`
	Meetings  []*Meeting  `json:"meetings"`
	Products  []*Product  `json:"products"`
}

// ActiveCustomers retorna os clientes não excluídos, na ordem de inserção
func (s *Snapshot) ActiveCustomers() []*Customer {
	customers := make([]*Customer, 0, len(s.Customers))
	for _, c := range s.Customers {
		if c == nil || c.Deleted {
			continue
		}
		customers = append(customers, c)
	}
	return customers
}

// QualifyingOrders retorna os pedidos não excluídos e não cancelados do cliente
func (s *Snapshot) QualifyingOrders(customerID string) []*Order {
	orders := make([]*Order, 0)
	for _, o := range s.Orders {
		if o == nil || o.Deleted || o.Status == OrderStatusCancelled {
			continue
		}
		if o.CustomerID == customerID {
			orders = append(orders, o)
		}
	}
	return orders
}

// QualifyingPayments retorna os pagamentos não excluídos e não cancelados do cliente
func (s *Snapshot) QualifyingPayments(customerID string) []*Payment {
	payments := make([]*Payment, 0)
	for _, p := range s.Payments {
		if p == nil || p.Deleted || p.Status == PaymentStatusCancelled {
			continue
		}
		if p.CustomerID == customerID {
			payments = append(payments, p)
		}
	}
	return payments
}

// CustomerMeetings retorna as reuniões não excluídas do cliente
func (s *Snapshot) CustomerMeetings(customerID string) []*Meeting {
	meetings := make([]*Meeting, 0)
	for _, m := range s.Meetings {
		if m == nil || m.Deleted {
			continue
		}
		if m.CustomerID == customerID {
			meetings = append(meetings, m)
		}
	}
	return meetings
}
