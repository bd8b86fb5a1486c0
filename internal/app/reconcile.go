package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/semaphore"

	"estate_hub/internal/domain"
)

// ReconcileService re-applies cascades that a crash or a failed second
// write left half done. Running it twice changes nothing the second time.
type ReconcileService struct {
	users      domain.UserRepository
	properties domain.PropertyRepository
	offers     domain.OfferRepository
	cache      readCache
	workers    int
}

// NewReconcileService takes the API's cache, if any, so repaired listings
// are not served stale. cache may be nil.
func NewReconcileService(store domain.Store, cache domain.Cache, workers int) *ReconcileService {
	if workers <= 0 {
		workers = 1
	}
	return &ReconcileService{
		users:      store.Users,
		properties: store.Properties,
		offers:     store.Offers,
		cache:      readCache{c: cache},
		workers:    workers,
	}
}

type ReconcileReport struct {
	FraudUsers       int
	ListingsFlagged  int64
	AcceptedOffers   int
	SiblingsRejected int64
	// Conflicts holds properties with more than one accepted offer. They
	// need a human decision and are not modified.
	Conflicts []primitive.ObjectID
	Failures  int
}

func (s *ReconcileService) Run(ctx context.Context) (ReconcileReport, error) {
	var rep ReconcileReport
	if err := s.repairFraud(ctx, &rep); err != nil {
		return rep, err
	}
	if err := s.repairAcceptedOffers(ctx, &rep); err != nil {
		return rep, err
	}
	return rep, nil
}

func (s *ReconcileService) repairFraud(ctx context.Context, rep *ReconcileReport) error {
	users, err := s.users.ListByStatus(ctx, domain.UserStatusFraud)
	if err != nil {
		return err
	}
	rep.FraudUsers = len(users)

	var mu sync.Mutex
	return s.fanOut(ctx, len(users), func(i int) {
		agentID := users[i].ID.Hex()
		var listed []domain.Property
		if s.cache.c != nil {
			var lerr error
			if listed, lerr = s.properties.List(ctx, domain.PropertyFilter{AgentID: agentID}); lerr != nil {
				log.Warn().Err(lerr).Str("user", agentID).Msg("listing lookup for cache eviction failed")
			}
		}
		res, err := s.properties.SetVerificationByAgent(ctx, agentID, domain.VerificationFraud)
		if err == nil {
			for _, p := range listed {
				s.cache.del(ctx, propertyKey(p.ID))
			}
		}
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			rep.Failures++
			log.Warn().Str("user", agentID).Err(err).Msg("fraud cascade repair failed")
			return
		}
		rep.ListingsFlagged += res.ModifiedCount
	})
}

func (s *ReconcileService) repairAcceptedOffers(ctx context.Context, rep *ReconcileReport) error {
	accepted, err := s.offers.List(ctx, domain.OfferFilter{Status: domain.OfferAccepted})
	if err != nil {
		return err
	}
	rep.AcceptedOffers = len(accepted)

	byProperty := map[primitive.ObjectID][]domain.Offer{}
	var order []primitive.ObjectID
	for _, o := range accepted {
		if o.PropertyID.IsZero() {
			continue
		}
		if _, seen := byProperty[o.PropertyID]; !seen {
			order = append(order, o.PropertyID)
		}
		byProperty[o.PropertyID] = append(byProperty[o.PropertyID], o)
	}

	var single []domain.Offer
	for _, pid := range order {
		if offers := byProperty[pid]; len(offers) > 1 {
			rep.Conflicts = append(rep.Conflicts, pid)
			log.Warn().Str("property", pid.Hex()).Int("accepted", len(offers)).Msg("multiple accepted offers on one property")
			continue
		}
		single = append(single, byProperty[pid][0])
	}

	var mu sync.Mutex
	return s.fanOut(ctx, len(single), func(i int) {
		o := single[i]
		res, err := s.offers.SetStatusWhere(ctx, domain.OfferFilter{
			PropertyID: o.PropertyID,
			ExcludeID:  o.ID,
			Status:     domain.OfferPending,
		}, domain.OfferRejected)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			rep.Failures++
			log.Warn().Str("offer", o.ID.Hex()).Err(err).Msg("sibling rejection repair failed")
			return
		}
		rep.SiblingsRejected += res.ModifiedCount
	})
}

// fanOut runs fn for 0..n-1 with at most s.workers in flight.
func (s *ReconcileService) fanOut(ctx context.Context, n int, fn func(i int)) error {
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			fn(i)
		}(i)
	}
	wg.Wait()
	return nil
}
