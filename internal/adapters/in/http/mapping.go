package http

import (
	"time"

	"standingorders/internal/core/application/usecases/commands"
	"standingorders/internal/core/application/usecases/queries"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toDate(d *openapi_types.Date) *kernel.Date {
	if d == nil {
		return nil
	}
	date := kernel.DateOf(d.Time)
	return &date
}

func fromDate(d kernel.Date) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

func fromDatePtr(d *kernel.Date) *openapi_types.Date {
	if d == nil {
		return nil
	}
	date := fromDate(*d)
	return &date
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toItemInputs(items []Item) []commands.ItemInput {
	out := make([]commands.ItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, commands.ItemInput{
			ProductCode:  item.ProductCode,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			UnitType:     item.UnitType,
			SpecialNotes: item.SpecialNotes,
		})
	}
	return out
}

func fromItems(items []queries.ItemView) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, Item{
			ProductCode:  item.ProductCode,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			UnitType:     item.UnitType,
			SpecialNotes: item.SpecialNotes,
		})
	}
	return out
}

func fromSchedule(v queries.ScheduleView) Schedule {
	s := Schedule{
		Id:              v.ID.Bytes(),
		StandingOrderId: v.StandingOrderID.Bytes(),
		ScheduledDate:   fromDate(v.ScheduledDate),
		Status:          v.Status.String(),
		OrderCreatedBy:  v.OrderCreatedBy,
		OrderReference:  v.OrderReference,
		Notes:           v.Notes,
	}
	if v.OrderCreatedDate != nil {
		created := timestamp(*v.OrderCreatedDate)
		s.OrderCreatedDate = &created
	}
	return s
}

func standingOrder(
	id, customerID kernel.UUID,
	customerName string,
	days standingorder.WeekdaySet,
	start kernel.Date,
	end *kernel.Date,
	status standingorder.Status,
	instructions string,
	items []queries.ItemView,
) StandingOrder {
	return StandingOrder{
		Id:                  id.Bytes(),
		CustomerId:          customerID.Bytes(),
		CustomerName:        customerName,
		DeliveryDays:        days.Days(),
		DeliveryDayNames:    days.Names(),
		StartDate:           fromDate(start),
		EndDate:             fromDatePtr(end),
		Status:              status.String(),
		SpecialInstructions: instructions,
		Items:               fromItems(items),
	}
}

func toDashboard(resp queries.ListStandingOrdersQueryResponse) Dashboard {
	orders := make([]StandingOrder, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		orders = append(orders, standingOrder(
			o.ID, o.CustomerID, o.CustomerName, o.DeliveryDays,
			o.StartDate, o.EndDate, o.Status, o.SpecialInstructions, o.Items,
		))
	}

	today := make([]TodayDelivery, 0, len(resp.TodayDeliveries))
	for _, d := range resp.TodayDeliveries {
		delivery := TodayDelivery{
			StandingOrderId: d.StandingOrderID.Bytes(),
			CustomerName:    d.CustomerName,
			Status:          d.Status.String(),
			Items:           fromItems(d.Items),
		}
		if d.ScheduleID != nil {
			id := d.ScheduleID.Bytes()
			delivery.ScheduleId = &id
		}
		today = append(today, delivery)
	}

	return Dashboard{
		Today:           fromDate(resp.Today),
		ActiveCount:     resp.ActiveCount,
		PausedCount:     resp.PausedCount,
		PendingThisWeek: resp.PendingThisWeek,
		Orders:          orders,
		TodayDeliveries: today,
	}
}

func toStandingOrderDetail(resp queries.GetStandingOrderQueryResponse) StandingOrderDetail {
	o := resp.Order

	schedules := make([]Schedule, 0, len(resp.Schedules))
	for _, s := range resp.Schedules {
		schedules = append(schedules, fromSchedule(s))
	}

	logs := make([]LogEntry, 0, len(resp.Logs))
	for _, l := range resp.Logs {
		details := l.Details
		if details == nil {
			details = map[string]any{}
		}
		logs = append(logs, LogEntry{
			Id:          l.ID.Bytes(),
			ActionType:  l.ActionType.String(),
			Details:     details,
			PerformedBy: l.PerformedBy,
			PerformedAt: timestamp(l.PerformedAt),
		})
	}

	return StandingOrderDetail{
		StandingOrder: standingOrder(
			o.ID, o.CustomerID, o.CustomerName, o.DeliveryDays,
			o.StartDate, o.EndDate, o.Status, o.SpecialInstructions, o.Items,
		),
		CreatedBy: o.CreatedBy,
		CreatedAt: timestamp(o.CreatedAt),
		UpdatedAt: timestamp(o.UpdatedAt),
		Month:     resp.Month.MonthString(),
		Schedules: schedules,
		Logs:      logs,
	}
}

func toScheduleView(resp queries.GetScheduleViewQueryResponse) ScheduleViewResponse {
	days := make([]ScheduleDay, 0, len(resp.Days))
	for _, day := range resp.Days {
		entries := make([]ScheduleEntry, 0, len(day.Entries))
		for _, e := range day.Entries {
			entries = append(entries, ScheduleEntry{
				Schedule:            fromSchedule(e.ScheduleView),
				CustomerId:          e.CustomerID.Bytes(),
				CustomerName:        e.CustomerName,
				SpecialInstructions: e.SpecialInstructions,
				Items:               fromItems(e.Items),
			})
		}
		days = append(days, ScheduleDay{Date: fromDate(day.Date), Entries: entries})
	}

	return ScheduleViewResponse{
		View:   string(resp.ViewType),
		Date:   fromDate(resp.Target),
		From:   fromDate(resp.From),
		To:     fromDate(resp.To),
		Days:   days,
		Totals: ScheduleTotals(resp.Totals),
	}
}
